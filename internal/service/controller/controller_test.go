package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/hydration-clock/internal/clock"
	"github.com/oshokin/hydration-clock/internal/config"
	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
	"github.com/oshokin/hydration-clock/internal/metrics"
	"github.com/oshokin/hydration-clock/internal/service/scheduler"
)

// recordingSink keeps every notification.
type recordingSink struct {
	mu       sync.Mutex
	titles   []string
	messages []string
}

func (r *recordingSink) Notify(_ context.Context, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
}

func (r *recordingSink) count(title string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, t := range r.titles {
		if t == title {
			n++
		}
	}

	return n
}

func (r *recordingSink) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return ""
	}

	return r.messages[len(r.messages)-1]
}

// recordingListener counts change signals.
type recordingListener struct {
	mu        sync.Mutex
	displays  []string
	alarms    [][]domain.Entry
	reminders []bool
}

func (l *recordingListener) ClockUpdated(_ context.Context, display string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.displays = append(l.displays, display)
}

func (l *recordingListener) AlarmsChanged(_ context.Context, alarms []domain.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.alarms = append(l.alarms, alarms)
}

func (l *recordingListener) RemindersChanged(_ context.Context, enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reminders = append(l.reminders, enabled)
}

// utcClock reads the clock in UTC so the synctest epoch is midnight.
func utcClock() clock.Source {
	return clock.Func(func() time.Time { return time.Now().UTC() })
}

// manualClock is a settable clock.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

func (m *manualClock) set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = t
}

func mustTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()

	at, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)

	return at
}

// TestController_ToggleRemindersTwiceEmitsNothing checks that on then off
// within one interval never emits.
func TestController_ToggleRemindersTwiceEmitsNothing(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		sink := new(recordingSink)
		listener := new(recordingListener)

		c, err := New(sink, WithListener(listener))
		require.NoError(t, err)

		ctx, cancel := startController(t, c)

		require.True(t, c.ToggleReminders(ctx))
		require.True(t, c.RemindersEnabled())
		require.False(t, c.ToggleReminders(ctx))
		require.False(t, c.RemindersEnabled())

		time.Sleep(time.Minute)
		synctest.Wait()

		require.Zero(t, sink.count(scheduler.ReminderTitle))
		require.Equal(t, []bool{false, true, false}, listener.reminders)

		cancel()
	})
}

// TestController_RemindersEmitWhileEnabled checks cadence through the controller.
func TestController_RemindersEmitWhileEnabled(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		sink := new(recordingSink)

		c, err := New(sink, WithIntervals(0, 0, 5*time.Second), WithRandom(func(int) int { return 0 }))
		require.NoError(t, err)

		ctx, cancel := startController(t, c)

		require.True(t, c.SetReminders(ctx, true))
		// Enabling twice keeps a single emitter.
		require.True(t, c.SetReminders(ctx, true))

		time.Sleep(11 * time.Second)
		synctest.Wait()
		require.Equal(t, 2, sink.count(scheduler.ReminderTitle))

		require.False(t, c.SetReminders(ctx, false))

		time.Sleep(time.Minute)
		synctest.Wait()
		require.Equal(t, 2, sink.count(scheduler.ReminderTitle))

		cancel()
	})
}

// startController runs c in the background until the returned cancel is
// called; cancel waits for Run to return.
func startController(t *testing.T, c *Controller) (context.Context, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- c.Run(ctx)
	}()

	synctest.Wait()

	return ctx, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

// TestController_AlarmCommands covers add, edit, toggle and arm.
func TestController_AlarmCommands(t *testing.T) {
	t.Parallel()

	listener := new(recordingListener)
	c, err := New(new(recordingSink), WithListener(listener))
	require.NoError(t, err)

	ctx := context.Background()

	index, err := c.AddAlarm(ctx, mustTime(t, "07:30"))
	require.NoError(t, err)
	require.Equal(t, 0, index)

	index, err = c.AddAlarm(ctx, mustTime(t, "08:00"))
	require.NoError(t, err)
	require.Equal(t, 1, index)

	_, err = c.AddAlarm(ctx, domain.TimeOfDay{Hour: 25})
	require.ErrorIs(t, err, domain.ErrInvalidTime)

	require.NoError(t, c.EditAlarm(ctx, 0, mustTime(t, "07:45")))
	require.ErrorIs(t, c.EditAlarm(ctx, 5, mustTime(t, "07:45")), domain.ErrOutOfRange)
	require.ErrorIs(t, c.EditAlarm(ctx, 0, domain.TimeOfDay{Minute: 61}), domain.ErrInvalidTime)

	armed, err := c.ToggleAlarm(ctx, 1)
	require.NoError(t, err)
	require.False(t, armed)

	_, err = c.ToggleAlarm(ctx, -1)
	require.ErrorIs(t, err, domain.ErrOutOfRange)

	require.NoError(t, c.SetAlarmArmed(ctx, 1, true))
	require.ErrorIs(t, c.SetAlarmArmed(ctx, 2, true), domain.ErrOutOfRange)

	alarms := c.Alarms()
	require.Len(t, alarms, 2)
	require.Equal(t, mustTime(t, "07:45"), alarms[0].Alarm.Time)
	require.True(t, alarms[1].Alarm.Armed)

	// add, add, edit, toggle, arm.
	require.Len(t, listener.alarms, 5)
}

// TestController_CheckAlarmsFiresOnce verifies that a due alarm fires and disarms.
func TestController_CheckAlarmsFiresOnce(t *testing.T) {
	t.Parallel()

	source := &manualClock{now: time.Date(2026, time.October, 17, 10, 29, 50, 0, time.UTC)}
	sink := new(recordingSink)

	c, err := New(sink, WithClock(source))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = c.AddAlarm(ctx, mustTime(t, "10:30"))
	require.NoError(t, err)

	require.Empty(t, c.CheckAlarms(ctx))

	source.set(time.Date(2026, time.October, 17, 10, 30, 5, 0, time.UTC))
	fired := c.CheckAlarms(ctx)
	require.Len(t, fired, 1)
	require.Equal(t, "Alarm 10:30 is ringing!", sink.last())

	source.set(time.Date(2026, time.October, 17, 10, 30, 20, 0, time.UTC))
	require.Empty(t, c.CheckAlarms(ctx))
	require.False(t, c.Alarms()[0].Alarm.Armed)
	require.Equal(t, 1, sink.count(scheduler.AlarmTitle))
}

// TestController_CheckGapIsCounted verifies the late-check warning counter.
func TestController_CheckGapIsCounted(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	source := &manualClock{now: start}
	m := metrics.New()

	c, err := New(new(recordingSink), WithClock(source), WithMetrics(m))
	require.NoError(t, err)

	ctx := context.Background()

	c.CheckAlarms(ctx)
	source.set(start.Add(30 * time.Second))
	c.CheckAlarms(ctx)
	source.set(start.Add(5 * time.Minute))
	c.CheckAlarms(ctx)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Contains(t, rec.Body.String(), "hydration_clock_alarm_check_gaps_total 1")
}

// TestController_Status reports the clock, flag and alarms.
func TestController_Status(t *testing.T) {
	t.Parallel()

	source := clock.Func(func() time.Time {
		return time.Date(2026, time.October, 17, 14, 15, 0, 0, time.UTC)
	})

	c, err := New(new(recordingSink), WithClock(source))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = c.AddAlarm(ctx, mustTime(t, "06:00"))
	require.NoError(t, err)

	status := c.Status(ctx)
	require.Equal(t, mustTime(t, "14:15"), status.Now)
	require.False(t, status.RemindersEnabled)
	require.Len(t, status.Alarms, 1)
}

// TestController_RejectsCoarseAlarmCheck guards the once-a-minute requirement.
func TestController_RejectsCoarseAlarmCheck(t *testing.T) {
	t.Parallel()

	_, err := New(new(recordingSink), WithIntervals(2*time.Minute, 0, 0))
	require.Error(t, err)
}

// TestController_Run drives both loops on the fake clock.
func TestController_Run(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		sink := new(recordingSink)
		listener := new(recordingListener)

		c, err := New(sink,
			WithClock(utcClock()),
			WithListener(listener),
			WithIntervals(15*time.Second, 30*time.Second, 5*time.Second),
			WithRemindersEnabled(true),
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())

		_, err = c.AddAlarm(ctx, mustTime(t, "00:01"))
		require.NoError(t, err)

		done := make(chan error, 1)

		go func() {
			done <- c.Run(ctx)
		}()

		synctest.Wait()
		require.True(t, c.RemindersEnabled())
		require.Zero(t, sink.count(scheduler.AlarmTitle))

		time.Sleep(61 * time.Second)
		synctest.Wait()

		require.Equal(t, 1, sink.count(scheduler.AlarmTitle))
		require.Equal(t, 12, sink.count(scheduler.ReminderTitle))
		require.False(t, c.Alarms()[0].Alarm.Armed)

		listener.mu.Lock()
		require.Equal(t, []string{"00:00", "00:00", "00:01"}, listener.displays)
		listener.mu.Unlock()

		cancel()
		require.NoError(t, <-done)
		require.False(t, c.RemindersEnabled())

		// The emitter is gone once Run has returned.
		time.Sleep(time.Minute)
		synctest.Wait()
		require.Equal(t, 12, sink.count(scheduler.ReminderTitle))
	})
}

// TestController_RunKeepsEarlierToggle checks that a command issued before Run
// wins over the configured initial state and that emitting waits for Run.
func TestController_RunKeepsEarlierToggle(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		sink := new(recordingSink)

		c, err := New(sink, WithRemindersEnabled(false), WithIntervals(0, 0, 5*time.Second))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())

		require.True(t, c.ToggleReminders(ctx))

		time.Sleep(time.Minute)
		synctest.Wait()
		require.Zero(t, sink.count(scheduler.ReminderTitle))

		done := make(chan error, 1)

		go func() {
			done <- c.Run(ctx)
		}()

		synctest.Wait()
		require.True(t, c.RemindersEnabled())

		time.Sleep(11 * time.Second)
		synctest.Wait()
		require.Equal(t, 2, sink.count(scheduler.ReminderTitle))

		cancel()
		require.NoError(t, <-done)
		require.False(t, c.RemindersEnabled())
	})
}

// TestController_InitialStateBeforeRun reports the configured state without
// emitting until Run starts.
func TestController_InitialStateBeforeRun(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		sink := new(recordingSink)

		c, err := New(sink, WithRemindersEnabled(true), WithIntervals(0, 0, 5*time.Second))
		require.NoError(t, err)
		require.True(t, c.RemindersEnabled())

		time.Sleep(time.Minute)
		synctest.Wait()
		require.Zero(t, sink.count(scheduler.ReminderTitle))

		require.False(t, c.ToggleReminders(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- c.Run(ctx)
		}()

		time.Sleep(time.Minute)
		synctest.Wait()
		require.Zero(t, sink.count(scheduler.ReminderTitle))
		require.False(t, c.RemindersEnabled())

		cancel()
		require.NoError(t, <-done)
	})
}

// TestFromConfig maps settings onto a working controller.
func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.ReminderMessages = []string{"Sip!"}

	opts, err := FromConfig(cfg)
	require.NoError(t, err)

	_, err = New(new(recordingSink), opts...)
	require.NoError(t, err)

	cfg.ReminderMessages = []string{"  "}
	_, err = FromConfig(cfg)
	require.Error(t, err)
}
