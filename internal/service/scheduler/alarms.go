package scheduler

import (
	"context"
	"fmt"
	"time"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
	"github.com/oshokin/hydration-clock/internal/logger"
)

// Registry is the part of the alarm registry the scheduler depends on.
type Registry interface {
	Snapshot() []domain.Entry
	DisarmIfDue(index int, at domain.TimeOfDay) (domain.Alarm, bool)
}

// AlarmScheduler fires armed alarms whose time matches the clock.
type AlarmScheduler struct {
	// registry holds the alarms to evaluate.
	registry Registry
	// sink receives alarm notifications.
	sink Sink
	// observer is told about every fired alarm.
	observer Observer
}

// NewAlarmScheduler creates a scheduler over registry delivering to sink.
// A nil observer is allowed.
func NewAlarmScheduler(registry Registry, sink Sink, observer Observer) *AlarmScheduler {
	if observer == nil {
		observer = nopObserver{}
	}

	return &AlarmScheduler{
		registry: registry,
		sink:     sink,
		observer: observer,
	}
}

// Tick evaluates every armed alarm against now, ignoring seconds and date.
// Each matching alarm is disarmed and announced; the fired entries are
// returned in registry order.
func (s *AlarmScheduler) Tick(ctx context.Context, now time.Time) []domain.Entry {
	current := domain.TimeOf(now)

	var fired []domain.Entry

	for _, entry := range s.registry.Snapshot() {
		if !entry.Alarm.Due(current) {
			continue
		}

		// The registry re-checks the alarm, an edit or toggle may have won the race.
		alarm, ok := s.registry.DisarmIfDue(entry.Index, current)
		if !ok {
			continue
		}

		entry.Alarm = alarm

		s.sink.Notify(ctx, AlarmTitle, AlarmMessage(alarm.Time))
		s.observer.AlarmFired(entry)

		logger.InfoKV(ctx, "Alarm fired", "index", entry.Index, "time", alarm.Time.String())

		fired = append(fired, entry)
	}

	return fired
}

// AlarmMessage is the notification text for an alarm set to at.
func AlarmMessage(at domain.TimeOfDay) string {
	return fmt.Sprintf("Alarm %s is ringing!", at)
}
