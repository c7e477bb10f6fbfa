package notify

import "os/exec"

// Overridable for testing.
var execCommand = exec.Command

// NotifySendNotifier sends notifications on Linux using notify-send.
type NotifySendNotifier struct {
	AppName string
}

// Notify sends a desktop notification.
func (n *NotifySendNotifier) Notify(title, message string) error {
	args := []string{title, message}
	if n.AppName != "" {
		args = append([]string{"--app-name", n.AppName}, args...)
	}
	cmd := execCommand("notify-send", args...)
	return cmd.Run()
}

func (n *NotifySendNotifier) Close() error {
	return nil
}
