package tray

import (
	"log/slog"
	"sync"

	"github.com/mblarsen/update-notifier-tray/internal/launcher"
	"github.com/mblarsen/update-notifier-tray/internal/probe"
)

// Worker is the background poller the tray drives.
type Worker interface {
	Results() <-chan probe.Result
	Rescan()
	Stop()
	Wait()
}

// Launcher opens the interactive update tool.
type Launcher interface {
	Launch(a launcher.Action) error
}

// App ties the poller, the presenter and the menu actions together.
type App struct {
	worker    Worker
	presenter *Presenter
	launcher  Launcher
	action    launcher.Action
	notifier  Notifier

	quit     func()
	exitOnce sync.Once
}

// NewApp creates the tray application. notifier is used to report launcher
// failures to the user.
func NewApp(worker Worker, presenter *Presenter, l Launcher, action launcher.Action, notifier Notifier) *App {
	return &App{
		worker:    worker,
		presenter: presenter,
		launcher:  l,
		action:    action,
		notifier:  notifier,
		quit:      func() {},
	}
}

// Dispatch feeds every probe result to the presenter until the worker stops.
// It is the only caller of Presenter.Handle. It runs on its own goroutine, not
// on the systray event loop, so the Surface it drives must accept calls from
// any goroutine; energye/systray's setters do.
func (a *App) Dispatch() {
	for res := range a.worker.Results() {
		a.presenter.Handle(res)
	}
	slog.Debug("Result dispatch finished")
}

// LaunchUpdateTool opens the distribution's update tool.
func (a *App) LaunchUpdateTool() {
	if err := a.launcher.Launch(a.action); err != nil {
		slog.Error("Failed to start update tool", "err", err)
		if nerr := a.notifier.Notify("Can't start the update tool", err.Error()); nerr != nil {
			slog.Warn("Failed to send notification", "err", nerr)
		}
	}
}

// Rescan asks the poller to probe right away.
func (a *App) Rescan() {
	a.worker.Rescan()
}

// Exit stops the poller, waits for it, then ends the tray loop.
func (a *App) Exit() {
	a.exitOnce.Do(func() {
		slog.Info("Exiting")
		a.worker.Stop()
		a.worker.Wait()
		a.quit()
	})
}
