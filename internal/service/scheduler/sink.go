package scheduler

import (
	"context"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

// Notification titles.
const (
	// AlarmTitle is used for alarm notifications.
	AlarmTitle = "Alarm"
	// ReminderTitle is used for hydration reminders.
	ReminderTitle = "Notification"
)

// Sink accepts notifications for best-effort display.
// Implementations must return promptly and handle their own failures.
type Sink interface {
	Notify(ctx context.Context, title, message string)
}

// Observer is told about scheduler activity.
type Observer interface {
	AlarmFired(entry domain.Entry)
	ReminderEmitted(message string)
}

// nopObserver discards events.
type nopObserver struct{}

func (nopObserver) AlarmFired(domain.Entry) {}

func (nopObserver) ReminderEmitted(string) {}
