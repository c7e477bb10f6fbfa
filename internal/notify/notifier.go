// Package notify delivers desktop notifications.
package notify

import (
	"fmt"
	"strings"
)

// DefaultAppName is the application name announced to the notification server.
const DefaultAppName = "update notifier"

// Notifier is an interface for sending desktop notifications.
type Notifier interface {
	// Notify sends a desktop notification.
	Notify(title, message string) error
	// Close releases whatever the backend set up.
	Close() error
}

// Backend names accepted by New.
const (
	BackendBeeep      = "beeep"
	BackendDBus       = "dbus"
	BackendNotifySend = "notify-send"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendBeeep, BackendDBus, BackendNotifySend}

// New sets up the named backend. It is meant to be called once by the
// process entry point; the caller owns the returned Notifier and must Close it.
func New(backend, appName string) (Notifier, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	switch strings.ToLower(backend) {
	case "", BackendBeeep:
		return NewBeeepNotifier(appName), nil
	case BackendDBus:
		return NewDBusNotifier(appName)
	case BackendNotifySend:
		return &NotifySendNotifier{AppName: appName}, nil
	default:
		return nil, fmt.Errorf("unknown notifier backend: %s (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}
