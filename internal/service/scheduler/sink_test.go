package scheduler

import (
	"context"
	"sync"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

// sent is one recorded notification.
type sent struct {
	title   string
	message string
}

// recordingSink is an in-memory Sink for tests.
type recordingSink struct {
	mu    sync.Mutex
	items []sent
}

// Notify records the notification.
func (r *recordingSink) Notify(_ context.Context, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, sent{title: title, message: message})
}

// all returns a copy of the recorded notifications.
func (r *recordingSink) all() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]sent(nil), r.items...)
}

// countingObserver counts scheduler events.
type countingObserver struct {
	mu        sync.Mutex
	fired     []domain.Entry
	reminders int
}

func (o *countingObserver) AlarmFired(entry domain.Entry) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.fired = append(o.fired, entry)
}

func (o *countingObserver) ReminderEmitted(string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.reminders++
}
