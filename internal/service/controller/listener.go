package controller

import (
	"context"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
	"github.com/oshokin/hydration-clock/internal/logger"
)

// Listener is told when something the UI renders has changed.
// Calls happen synchronously and must return quickly.
type Listener interface {
	ClockUpdated(ctx context.Context, display string)
	AlarmsChanged(ctx context.Context, alarms []domain.Entry)
	RemindersChanged(ctx context.Context, enabled bool)
}

// LogListener renders changes to the debug log, for running without a UI.
type LogListener struct{}

// ClockUpdated logs the displayed time.
func (LogListener) ClockUpdated(ctx context.Context, display string) {
	logger.DebugKV(ctx, "Clock", "time", display)
}

// AlarmsChanged logs the alarm list.
func (LogListener) AlarmsChanged(ctx context.Context, alarms []domain.Entry) {
	for _, e := range alarms {
		logger.DebugKV(ctx, "Alarm", "index", e.Index, "time", e.Alarm.Time.String(), "armed", e.Alarm.Armed)
	}
}

// RemindersChanged logs the reminder state.
func (LogListener) RemindersChanged(ctx context.Context, enabled bool) {
	logger.DebugKV(ctx, "Reminders", "enabled", enabled)
}

// nopListener ignores changes.
type nopListener struct{}

func (nopListener) ClockUpdated(context.Context, string) {}

func (nopListener) AlarmsChanged(context.Context, []domain.Entry) {}

func (nopListener) RemindersChanged(context.Context, bool) {}
