package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/hydration-clock/internal/domain/reminder"
	"github.com/oshokin/hydration-clock/internal/logger"
)

// errNonPositiveInterval is returned for a zero or negative cadence.
var errNonPositiveInterval = errors.New("reminder interval must be positive")

// ReminderScheduler periodically pushes a random reminder to the sink.
type ReminderScheduler struct {
	// sink receives reminders.
	sink Sink
	// pool is the immutable message pool.
	pool *reminder.Pool
	// interval is the emission cadence.
	interval time.Duration
	// intn picks a message index; nil means math/rand/v2.
	intn func(n int) int
	// observer is told about every emission.
	observer Observer

	// mu guards cancel and done.
	mu sync.Mutex
	// cancel stops the running emitter, nil when stopped.
	cancel context.CancelFunc
	// done is closed when the running emitter exits.
	done chan struct{}
}

// ReminderOption configures a ReminderScheduler.
type ReminderOption func(*ReminderScheduler)

// WithRandom overrides the uniform index source.
func WithRandom(intn func(n int) int) ReminderOption {
	return func(s *ReminderScheduler) {
		s.intn = intn
	}
}

// WithReminderObserver sets the observer told about every emission.
func WithReminderObserver(observer Observer) ReminderOption {
	return func(s *ReminderScheduler) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// NewReminderScheduler creates a stopped scheduler.
func NewReminderScheduler(
	sink Sink,
	pool *reminder.Pool,
	interval time.Duration,
	opts ...ReminderOption,
) (*ReminderScheduler, error) {
	if interval <= 0 {
		return nil, errNonPositiveInterval
	}

	if pool == nil {
		pool = reminder.Default()
	}

	s := &ReminderScheduler{
		sink:     sink,
		pool:     pool,
		interval: interval,
		observer: nopObserver{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Start begins periodic emission. The emitter lives until Stop is called or
// ctx is done. It returns false when an emitter is already running.
func (s *ReminderScheduler) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runningLocked() {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.cancel = cancel
	s.done = done

	go s.run(ctx, done)

	logger.InfoKV(ctx, "Reminders started", "interval", s.interval.String())

	return true
}

// Stop halts emission and waits for the emitter to exit, so no reminder is
// pushed after Stop returns. It returns false when nothing was running.
func (s *ReminderScheduler) Stop() bool {
	s.mu.Lock()

	if !s.runningLocked() {
		s.mu.Unlock()

		return false
	}

	cancel, done := s.cancel, s.done
	s.cancel = nil

	s.mu.Unlock()

	cancel()
	<-done

	return true
}

// Running reports whether an emitter is active.
func (s *ReminderScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runningLocked()
}

// runningLocked must be called with mu held.
func (s *ReminderScheduler) runningLocked() bool {
	if s.cancel == nil {
		return false
	}

	select {
	case <-s.done:
		// The parent context ended the emitter.
		return false
	default:
		return true
	}
}

// run emits one reminder per interval until ctx is done.
func (s *ReminderScheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug(ctx, "Reminder emitter stopped")
			return
		case <-ticker.C:
			// Both cases may be ready at once; cancellation wins.
			if ctx.Err() != nil {
				return
			}

			message := s.pool.Pick(s.intn)
			s.sink.Notify(ctx, ReminderTitle, message)
			s.observer.ReminderEmitted(message)
		}
	}
}
