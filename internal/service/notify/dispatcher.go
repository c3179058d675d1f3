package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/hydration-clock/internal/config"
	"github.com/oshokin/hydration-clock/internal/logger"
	"github.com/oshokin/hydration-clock/internal/metrics"
)

// sendTimeout bounds a single platform call.
const sendTimeout = 10 * time.Second

// Dispatcher queues notifications and delivers them from one worker goroutine.
type Dispatcher struct {
	// notifier is the platform backend.
	notifier Notifier
	// queue buffers notifications between Notify and the worker.
	queue chan Notification
	// metrics counts delivery results; nil records nothing.
	metrics *metrics.Metrics
	// now stamps CreatedAt.
	now func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithQueueSize sets the number of buffered notifications.
func WithQueueSize(size int) DispatcherOption {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queue = make(chan Notification, size)
		}
	}
}

// WithMetrics counts delivery results.
func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher for notifier. Call Run to start delivery.
func NewDispatcher(notifier Notifier, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Notification, config.DefaultNotificationQueue),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Notify enqueues a notification without blocking. When the queue is full the
// notification is dropped with a warning.
func (d *Dispatcher) Notify(ctx context.Context, title, message string) {
	n := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: d.now(),
	}

	select {
	case d.queue <- n:
		logger.DebugKV(ctx, "Notification queued", "id", n.ID, "title", title)
	default:
		d.metrics.NotificationResult(metrics.ResultDropped)
		logger.WarnKV(ctx, "Notification queue is full, dropping notification", "id", n.ID, "title", title)
	}
}

// Run delivers queued notifications until ctx is done. Delivery errors are
// logged and never returned.
func (d *Dispatcher) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "notify")

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-d.queue:
			d.deliver(ctx, n)
		}
	}
}

// deliver performs one platform call.
func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.notifier.Send(sendCtx, n); err != nil {
		d.metrics.NotificationResult(metrics.ResultFailed)
		logger.ErrorKV(ctx, "Failed to deliver notification", "id", n.ID, "title", n.Title, "error", err)

		return
	}

	d.metrics.NotificationResult(metrics.ResultDelivered)
	logger.DebugKV(ctx, "Notification delivered", "id", n.ID, "latency", d.now().Sub(n.CreatedAt).String())
}
