package notify

import (
	"github.com/gen2brain/beeep"

	"tomatoclock/internal/infrastructure/logging"
)

// Notifier abstracts desktop notification delivery so the timer core can
// decide when and what to notify without depending on the display mechanism.
type Notifier interface {
	Notify(title, body string) error
}

// DesktopNotifier sends native desktop notifications.
type DesktopNotifier struct {
	appName string
	logger  logging.Logger
}

// NewDesktopNotifier creates a notifier backed by the OS notification center.
func NewDesktopNotifier(appName string, logger logging.Logger) *DesktopNotifier {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &DesktopNotifier{
		appName: appName,
		logger:  logger,
	}
}

// Notify sends a system notification. Failures are logged and returned; the
// caller decides whether they matter (phase transitions never abort on them).
func (n *DesktopNotifier) Notify(title, body string) error {
	beeep.AppName = n.appName
	if err := beeep.Notify(title, body, ""); err != nil {
		n.logger.Warn("Desktop notification failed", "title", title, "error", err)
		return err
	}
	return nil
}

// NoopNotifier swallows notifications. Used when the user disables them and
// in tests.
type NoopNotifier struct{}

// Notify discards the notification and reports success.
func (NoopNotifier) Notify(title, body string) error {
	return nil
}
