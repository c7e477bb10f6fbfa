// Package tray shows the pending upgrade count in the system tray.
package tray

import "fmt"

// Phase is the kind of thing the tray icon is showing.
type Phase int

const (
	Hidden Phase = iota
	ShowingCount
	ShowingError
)

// State is what the tray currently shows. Count is only meaningful for
// ShowingCount.
type State struct {
	Phase Phase
	Count int
}

func (s State) String() string {
	switch s.Phase {
	case ShowingCount:
		return fmt.Sprintf("showing-count(%d)", s.Count)
	case ShowingError:
		return "showing-error"
	default:
		return "hidden"
	}
}

// Icon is a symbolic tray icon.
type Icon int

const (
	IconUpdates Icon = iota
	IconError
)

// Surface is the part of the desktop tray the presenter drives.
type Surface interface {
	SetIcon(icon Icon)
	SetTooltip(text string)
	Show()
	Hide()
}

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}
