package controller

import (
	"time"

	"github.com/oshokin/hydration-clock/internal/clock"
	"github.com/oshokin/hydration-clock/internal/config"
	"github.com/oshokin/hydration-clock/internal/domain/reminder"
	"github.com/oshokin/hydration-clock/internal/metrics"
)

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock source.
func WithClock(source clock.Source) Option {
	return func(c *Controller) {
		if source != nil {
			c.clock = source
		}
	}
}

// WithIntervals sets the alarm check, display refresh and reminder cadences.
// Zero values keep the defaults.
func WithIntervals(alarmCheck, display, reminders time.Duration) Option {
	return func(c *Controller) {
		if alarmCheck > 0 {
			c.alarmCheckInterval = alarmCheck
		}

		if display > 0 {
			c.displayInterval = display
		}

		if reminders > 0 {
			c.reminderInterval = reminders
		}
	}
}

// WithPool sets the reminder message pool.
func WithPool(pool *reminder.Pool) Option {
	return func(c *Controller) {
		if pool != nil {
			c.pool = pool
		}
	}
}

// WithRemindersEnabled sets the initial reminder state. The emitter starts
// with Run.
func WithRemindersEnabled(enabled bool) Option {
	return func(c *Controller) {
		c.enabled = enabled
	}
}

// WithRandom overrides the reminder message picker.
func WithRandom(intn func(n int) int) Option {
	return func(c *Controller) {
		c.intn = intn
	}
}

// WithMetrics records scheduler activity.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithListener sets the change listener.
func WithListener(listener Listener) Option {
	return func(c *Controller) {
		if listener != nil {
			c.listener = listener
		}
	}
}

// FromConfig maps settings onto options.
func FromConfig(cfg *config.Config) ([]Option, error) {
	opts := []Option{
		WithIntervals(cfg.AlarmCheckInterval, cfg.DisplayInterval, cfg.ReminderInterval),
		WithRemindersEnabled(cfg.RemindersEnabled),
	}

	if len(cfg.ReminderMessages) > 0 {
		pool, err := reminder.NewPool(cfg.ReminderMessages)
		if err != nil {
			return nil, err
		}

		opts = append(opts, WithPool(pool))
	}

	return opts, nil
}
