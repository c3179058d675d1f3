package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/hydration-clock/internal/clock"
	"github.com/oshokin/hydration-clock/internal/config"
	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
	"github.com/oshokin/hydration-clock/internal/domain/reminder"
	"github.com/oshokin/hydration-clock/internal/logger"
	"github.com/oshokin/hydration-clock/internal/metrics"
	"github.com/oshokin/hydration-clock/internal/repository/alarms"
	"github.com/oshokin/hydration-clock/internal/service/scheduler"
)

// maxCheckGap is the largest tolerated distance between two alarm checks.
const maxCheckGap = time.Minute

// Controller owns the alarm registry, the schedulers and the reminder flag.
type Controller struct {
	clock    clock.Source
	registry *alarms.Registry
	alarms   *scheduler.AlarmScheduler
	reminder *scheduler.ReminderScheduler
	listener Listener
	metrics  *metrics.Metrics

	// Settings collected from options before the schedulers are built.
	pool               *reminder.Pool
	intn               func(n int) int
	alarmCheckInterval time.Duration
	displayInterval    time.Duration
	reminderInterval   time.Duration

	// mu serializes the reminder flag with scheduler start and stop.
	mu sync.Mutex
	// enabled reports whether reminders are on. WithRemindersEnabled seeds it,
	// after that only commands change it.
	enabled bool
	// lifetime parents the reminder emitter. It is nil unless Run is active,
	// and commands only start the emitter while it is set.
	lifetime context.Context
	// lastCheck is the clock value of the previous alarm check.
	lastCheck time.Time
}

// New builds a controller delivering notifications to sink.
func New(sink scheduler.Sink, opts ...Option) (*Controller, error) {
	c := &Controller{
		clock:              clock.System{},
		registry:           alarms.NewRegistry(),
		listener:           nopListener{},
		pool:               reminder.Default(),
		alarmCheckInterval: config.DefaultAlarmCheckInterval,
		displayInterval:    config.DefaultDisplayInterval,
		reminderInterval:   config.DefaultReminderInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.alarmCheckInterval > config.MaxAlarmCheckInterval {
		return nil, fmt.Errorf("alarm check interval %s exceeds %s", c.alarmCheckInterval, config.MaxAlarmCheckInterval)
	}

	var observer scheduler.Observer
	if c.metrics != nil {
		observer = c.metrics
	}

	c.alarms = scheduler.NewAlarmScheduler(c.registry, sink, observer)

	reminderOpts := []scheduler.ReminderOption{scheduler.WithRandom(c.intn)}
	if observer != nil {
		reminderOpts = append(reminderOpts, scheduler.WithReminderObserver(observer))
	}

	reminderScheduler, err := scheduler.NewReminderScheduler(sink, c.pool, c.reminderInterval, reminderOpts...)
	if err != nil {
		return nil, err
	}

	c.reminder = reminderScheduler

	return c, nil
}

// Run drives the alarm check and display refresh until ctx is done.
// It starts the reminder emitter if reminders are on, whether from
// WithRemindersEnabled or from a command issued before Run, and switches
// reminders off on exit.
func (c *Controller) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "controller")

	c.mu.Lock()
	c.lifetime = ctx
	enabled := c.enabled

	if enabled {
		c.reminder.Start(ctx)
	}

	c.mu.Unlock()

	defer c.shutdown(ctx)

	c.remindersChanged(ctx, enabled)
	c.CheckAlarms(ctx)
	c.refreshDisplay(ctx)

	checkTicker := time.NewTicker(c.alarmCheckInterval)
	defer checkTicker.Stop()

	displayTicker := time.NewTicker(c.displayInterval)
	defer displayTicker.Stop()

	logger.InfoKV(ctx, "Controller started",
		"alarm_check_interval", c.alarmCheckInterval.String(),
		"display_interval", c.displayInterval.String(),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-checkTicker.C:
			c.CheckAlarms(ctx)
		case <-displayTicker.C:
			c.refreshDisplay(ctx)
		}
	}
}

// shutdown stops the emitter and clears the flag so Status never reports
// reminders on while nothing emits them.
func (c *Controller) shutdown(ctx context.Context) {
	c.mu.Lock()
	wasEnabled := c.enabled
	c.enabled = false
	c.reminder.Stop()
	c.lifetime = nil
	c.mu.Unlock()

	if wasEnabled {
		c.remindersChanged(ctx, false)
	}

	logger.Info(ctx, "Controller stopped")
}

// ToggleReminders flips the reminder flag and returns the new value.
func (c *Controller) ToggleReminders(ctx context.Context) bool {
	c.mu.Lock()
	enabled := c.applyRemindersLocked(ctx, !c.enabled)
	c.mu.Unlock()

	c.remindersChanged(ctx, enabled)

	return enabled
}

// SetReminders sets the reminder flag and returns it.
func (c *Controller) SetReminders(ctx context.Context, enabled bool) bool {
	c.mu.Lock()
	enabled = c.applyRemindersLocked(ctx, enabled)
	c.mu.Unlock()

	c.remindersChanged(ctx, enabled)

	return enabled
}

// applyRemindersLocked must be called with mu held.
func (c *Controller) applyRemindersLocked(ctx context.Context, enabled bool) bool {
	c.enabled = enabled

	switch {
	case !enabled:
		if c.reminder.Stop() {
			logger.Debug(ctx, "Reminder emitter stopped")
		}
	case c.lifetime == nil:
		// Run starts the emitter.
	case c.reminder.Start(c.lifetime):
		// Request contexts end with the call, the emitter must outlive them.
		logger.Debug(ctx, "Reminder emitter started")
	}

	return enabled
}

// RemindersEnabled reports the reminder flag.
func (c *Controller) RemindersEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.enabled
}

// AddAlarm appends an armed alarm and returns its index.
func (c *Controller) AddAlarm(ctx context.Context, at domain.TimeOfDay) (int, error) {
	if err := at.Validate(); err != nil {
		return 0, err
	}

	index := c.registry.Add(at)

	logger.InfoKV(ctx, "Alarm added", "index", index, "time", at.String())
	c.alarmsChanged(ctx)

	return index, nil
}

// EditAlarm changes the time of the alarm at index.
func (c *Controller) EditAlarm(ctx context.Context, index int, at domain.TimeOfDay) error {
	if err := at.Validate(); err != nil {
		return err
	}

	if err := c.registry.Edit(index, at); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Alarm edited", "index", index, "time", at.String())
	c.alarmsChanged(ctx)

	return nil
}

// ToggleAlarm flips the armed flag of the alarm at index.
func (c *Controller) ToggleAlarm(ctx context.Context, index int) (bool, error) {
	armed, err := c.registry.Toggle(index)
	if err != nil {
		return false, err
	}

	logger.InfoKV(ctx, "Alarm toggled", "index", index, "armed", armed)
	c.alarmsChanged(ctx)

	return armed, nil
}

// SetAlarmArmed sets the armed flag of the alarm at index.
func (c *Controller) SetAlarmArmed(ctx context.Context, index int, armed bool) error {
	if err := c.registry.SetArmed(index, armed); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Alarm armed state set", "index", index, "armed", armed)
	c.alarmsChanged(ctx)

	return nil
}

// CheckAlarms runs one alarm check against the clock and returns what fired.
func (c *Controller) CheckAlarms(ctx context.Context) []domain.Entry {
	now := c.clock.Now()

	c.mu.Lock()
	last := c.lastCheck
	c.lastCheck = now
	c.mu.Unlock()

	if !last.IsZero() {
		if gap := now.Sub(last); gap > maxCheckGap {
			logger.WarnKV(ctx, "Alarm checks were delayed, minutes in between were not evaluated",
				"gap", gap.String())
			c.metrics.AlarmCheckGap()
		}
	}

	fired := c.alarms.Tick(ctx, now)
	if len(fired) > 0 {
		c.alarmsChanged(ctx)
	}

	return fired
}

// Alarms returns a snapshot of every alarm.
func (c *Controller) Alarms() []domain.Entry {
	return c.registry.Snapshot()
}

// Status returns the view rendered by front-ends.
func (c *Controller) Status(context.Context) domain.Status {
	return domain.Status{
		Now:              domain.TimeOf(c.clock.Now()),
		RemindersEnabled: c.RemindersEnabled(),
		Alarms:           c.registry.Snapshot(),
	}
}

func (c *Controller) refreshDisplay(ctx context.Context) {
	c.listener.ClockUpdated(ctx, domain.TimeOf(c.clock.Now()).String())
}

func (c *Controller) alarmsChanged(ctx context.Context) {
	snapshot := c.registry.Snapshot()

	c.metrics.SetArmedAlarms(snapshot)
	c.listener.AlarmsChanged(ctx, snapshot)
}

func (c *Controller) remindersChanged(ctx context.Context, enabled bool) {
	c.metrics.SetRemindersEnabled(enabled)
	c.listener.RemindersChanged(ctx, enabled)
}
