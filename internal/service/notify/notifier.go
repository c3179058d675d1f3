package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/hydration-clock/internal/config"
)

// AppName is shown by platforms that display the sending application.
const AppName = "Hydration Clock"

var (
	// ErrDeliveryFailed wraps every platform delivery error.
	ErrDeliveryFailed = errors.New("notification delivery failed")
	// ErrUnknownNotifier is returned by New for an unsupported backend name.
	ErrUnknownNotifier = errors.New("unknown notifier")
)

// Notification is one message for the user.
type Notification struct {
	// ID correlates log lines of one notification.
	ID string
	// Title is the notification summary.
	Title string
	// Message is the notification body.
	Message string
	// CreatedAt is when the notification was queued.
	CreatedAt time.Time
}

// Notifier displays a notification through a platform mechanism.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// New returns the notifier registered under kind.
//
//nolint:ireturn // Callers pick the backend by name at runtime.
func New(kind string) (Notifier, error) {
	switch kind {
	case config.NotifierDesktop, "":
		return NewDesktop(), nil
	case config.NotifierDBus:
		return NewDBus(), nil
	case config.NotifierLog:
		return NewLog(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotifier, kind)
	}
}
