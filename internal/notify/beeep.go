package notify

import "github.com/gen2brain/beeep"

// BeeepNotifier sends notifications through gen2brain/beeep.
type BeeepNotifier struct {
	// Icon is passed to beeep as is; empty uses the server default.
	Icon string
}

// NewBeeepNotifier configures beeep's application name.
func NewBeeepNotifier(appName string) *BeeepNotifier {
	beeep.AppName = appName
	return &BeeepNotifier{}
}

// Notify sends a desktop notification.
func (n *BeeepNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, n.Icon)
}

func (n *BeeepNotifier) Close() error {
	return nil
}
