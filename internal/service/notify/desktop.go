package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// Desktop delivers notifications through beeep, which picks the native
// mechanism of the running platform.
type Desktop struct {
	// send is beeep.Notify, replaceable in tests.
	send func(title, message string, icon any) error
}

// NewDesktop creates a beeep-backed notifier.
func NewDesktop() *Desktop {
	return &Desktop{
		send: func(title, message string, icon any) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Send displays n on the desktop.
func (d *Desktop) Send(_ context.Context, n Notification) error {
	if err := d.send(n.Title, n.Message, ""); err != nil {
		return fmt.Errorf("%w: desktop: %w", ErrDeliveryFailed, err)
	}

	return nil
}
