package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsMethod = notificationsDest + ".Notify"
)

// DBusNotifier talks to org.freedesktop.Notifications over a session bus
// connection it keeps open until Close.
type DBusNotifier struct {
	appName string
	icon    string

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewDBusNotifier connects to the session bus.
func NewDBusNotifier(appName string) (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &DBusNotifier{appName: appName, icon: "software-update-available", conn: conn}, nil
}

// Notify sends a desktop notification.
func (n *DBusNotifier) Notify(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn == nil {
		return fmt.Errorf("notifier is closed")
	}

	obj := n.conn.Object(notificationsDest, dbus.ObjectPath(notificationsPath))
	call := obj.Call(notificationsMethod, 0,
		n.appName,
		uint32(0),
		n.icon,
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		int32(-1),
	)
	if call.Err != nil {
		return fmt.Errorf("notify call: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify parse response: %w", err)
	}
	return nil
}

// Close drops the session bus connection.
func (n *DBusNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}
