package tray

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mblarsen/update-notifier-tray/internal/probe"
)

const (
	notificationTitle = "Updates available"
	errorTooltip      = "can't check for updates"
)

// NotifyPolicy decides whether a repeated count is announced again.
type NotifyPolicy int

const (
	// SuppressRepeats stays quiet when the count equals the last one announced.
	SuppressRepeats NotifyPolicy = iota
	// NotifyEveryTime announces every non-zero count.
	NotifyEveryTime
)

// UpdatesMessage is the tooltip and notification body for n pending updates.
func UpdatesMessage(n int) string {
	if n == 1 {
		return "There is 1 update available"
	}
	return fmt.Sprintf("There are %d updates available", n)
}

// Presenter maps probe results onto the tray icon. Handle must only be called
// from one goroutine.
type Presenter struct {
	surface  Surface
	notifier Notifier
	policy   NotifyPolicy

	state State

	mu           sync.Mutex
	lastNotified int
}

// NewPresenter creates a presenter. It does not touch the surface until
// Reset or Handle is called.
func NewPresenter(surface Surface, notifier Notifier, policy NotifyPolicy) *Presenter {
	return &Presenter{
		surface:  surface,
		notifier: notifier,
		policy:   policy,
	}
}

// State returns what the tray is showing.
func (p *Presenter) State() State {
	return p.state
}

// Reset hides the icon and forgets the last announced count.
func (p *Presenter) Reset() {
	p.hide()
}

// Handle applies one probe result.
func (p *Presenter) Handle(res probe.Result) {
	switch {
	case !res.OK():
		p.showError(res.Err)
	case res.Count == 0:
		p.hide()
	default:
		p.showCount(res.Count)
	}
	slog.Debug("Tray updated", "state", p.state)
}

func (p *Presenter) hide() {
	p.state = State{Phase: Hidden}
	p.surface.Hide()

	p.mu.Lock()
	p.lastNotified = 0
	p.mu.Unlock()
}

func (p *Presenter) showCount(n int) {
	p.state = State{Phase: ShowingCount, Count: n}
	message := UpdatesMessage(n)
	p.surface.SetIcon(IconUpdates)
	p.surface.SetTooltip(message)
	p.surface.Show()

	if !p.shouldNotify(n) {
		slog.Debug("Count unchanged, not notifying", "updates", n)
		return
	}
	if err := p.notifier.Notify(notificationTitle, message); err != nil {
		slog.Warn("Failed to send notification", "err", err)
	}
}

func (p *Presenter) showError(err error) {
	p.state = State{Phase: ShowingError}
	p.surface.SetIcon(IconError)
	p.surface.SetTooltip(errorTooltip)
	p.surface.Show()
	slog.Debug("Showing probe error", "err", err)
}

// shouldNotify records n as announced and reports whether to notify.
func (p *Presenter) shouldNotify(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.policy == SuppressRepeats && n == p.lastNotified {
		return false
	}
	p.lastNotified = n
	return true
}
