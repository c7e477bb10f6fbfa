package tray

import (
	"log/slog"
	"sync"

	"github.com/energye/systray"

	"github.com/mblarsen/update-notifier-tray/internal/launcher"
)

// systraySurface drives the tray icon through energye/systray. The tray has
// no notion of an invisible icon, so Hide swaps in a transparent image and
// clears the tooltip; the tray slot itself stays occupied.
type systraySurface struct {
	icons iconSet

	mu      sync.Mutex
	icon    Icon
	tooltip string
	visible bool
}

func newSystraySurface(icons iconSet) *systraySurface {
	return &systraySurface{icons: icons}
}

func (s *systraySurface) SetIcon(icon Icon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.icon = icon
	if s.visible {
		systray.SetIcon(s.icons[icon])
	}
}

func (s *systraySurface) SetTooltip(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tooltip = text
	if s.visible {
		systray.SetTooltip(text)
	}
}

func (s *systraySurface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
	systray.SetIcon(s.icons[s.icon])
	systray.SetTooltip(s.tooltip)
}

func (s *systraySurface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
	systray.SetIcon(blankPNG)
	systray.SetTooltip("")
}

// NewSystrayApp creates an App whose icon and menu live in the desktop's
// system tray.
func NewSystrayApp(worker Worker, l Launcher, notifier Notifier, action launcher.Action, policy NotifyPolicy) *App {
	surface := newSystraySurface(loadIcons(iconDirs()))
	app := NewApp(worker, NewPresenter(surface, notifier, policy), l, action, notifier)
	app.quit = systray.Quit
	return app
}

// Run blocks in the tray event loop until Exit is called. It must be called
// from the main goroutine.
func (a *App) Run() {
	systray.Run(a.onReady, func() {
		slog.Info("Tray stopped")
	})
}

func (a *App) onReady() {
	slog.Info("System tray ready")
	systray.SetTitle("Update notifier")
	a.presenter.Reset()

	runItem := systray.AddMenuItem(a.action.Label, "Open the interactive update tool")
	runItem.Click(a.LaunchUpdateTool)

	rescanItem := systray.AddMenuItem("Rescan now", "Check for updates right away")
	rescanItem.Click(a.Rescan)

	systray.AddSeparator()

	exitItem := systray.AddMenuItem("Exit", "Stop checking for updates")
	exitItem.Click(func() {
		go a.Exit()
	})

	systray.SetOnClick(func(menu systray.IMenu) {
		a.LaunchUpdateTool()
	})
	systray.SetOnDClick(func(menu systray.IMenu) {
		a.LaunchUpdateTool()
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		if menu == nil {
			return
		}
		if err := menu.ShowMenu(); err != nil {
			slog.Debug("Failed to show menu", "err", err)
		}
	})

	go a.Dispatch()
}
