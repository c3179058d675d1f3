package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/hydration-clock/internal/metrics"
)

var errTestPlatform = errors.New("tray unsupported")

// fakeNotifier records deliveries and can fail or block.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []Notification
	err     error
	release chan struct{}
}

// Send records n, optionally waiting for release first.
func (f *fakeNotifier) Send(ctx context.Context, n Notification) error {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, n)

	return f.err
}

// all returns a copy of the recorded notifications.
func (f *fakeNotifier) all() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Notification(nil), f.sent...)
}

// TestDispatcher_Delivers sends queued notifications in order.
func TestDispatcher_Delivers(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		notifier := new(fakeNotifier)
		m := metrics.New()
		d := NewDispatcher(notifier, WithMetrics(m))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- d.Run(ctx)
		}()

		d.Notify(ctx, "Alarm", "Alarm 10:30 is ringing!")
		d.Notify(ctx, "Notification", "Time to hydrate!")
		synctest.Wait()

		sent := notifier.all()
		require.Len(t, sent, 2)
		require.Equal(t, "Alarm", sent[0].Title)
		require.Equal(t, "Time to hydrate!", sent[1].Message)
		require.NotEmpty(t, sent[0].ID)
		require.NotEqual(t, sent[0].ID, sent[1].ID)

		cancel()
		require.NoError(t, <-done)
	})
}

// TestDispatcher_FailureIsContained logs failures and keeps delivering.
func TestDispatcher_FailureIsContained(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		notifier := &fakeNotifier{err: errTestPlatform}
		d := NewDispatcher(notifier)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = d.Run(ctx)
		}()

		d.Notify(ctx, "Alarm", "first")
		d.Notify(ctx, "Alarm", "second")
		synctest.Wait()

		require.Len(t, notifier.all(), 2)
	})
}

// TestDispatcher_NotifyNeverBlocks drops notifications when a slow backend fills the queue.
func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		notifier := &fakeNotifier{release: make(chan struct{})}
		m := metrics.New()
		d := NewDispatcher(notifier, WithQueueSize(1), WithMetrics(m))

		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			_ = d.Run(ctx)
		}()

		// The worker takes the first one and blocks on the backend, the second fills the queue.
		d.Notify(ctx, "Notification", "one")
		synctest.Wait()
		d.Notify(ctx, "Notification", "two")

		start := time.Now()
		d.Notify(ctx, "Notification", "three")
		require.Equal(t, start, time.Now())

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Contains(t, rec.Body.String(), `hydration_clock_notifications_total{result="dropped"} 1`)

		close(notifier.release)
		synctest.Wait()
		require.Len(t, notifier.all(), 2)

		cancel()
	})
}

// TestNew_Backends resolves backend names.
func TestNew_Backends(t *testing.T) {
	t.Parallel()

	for kind, want := range map[string]any{
		"desktop": (*Desktop)(nil),
		"":        (*Desktop)(nil),
		"dbus":    (*DBus)(nil),
		"log":     (*Log)(nil),
	} {
		n, err := New(kind)
		require.NoError(t, err)
		require.IsType(t, want, n)
	}

	_, err := New("carrier-pigeon")
	require.ErrorIs(t, err, ErrUnknownNotifier)
}

// TestDesktop_WrapsErrors marks platform failures as delivery failures.
func TestDesktop_WrapsErrors(t *testing.T) {
	t.Parallel()

	d := &Desktop{
		send: func(string, string, any) error { return errTestPlatform },
	}

	err := d.Send(context.Background(), Notification{Title: "Alarm"})
	require.ErrorIs(t, err, ErrDeliveryFailed)
	require.ErrorIs(t, err, errTestPlatform)

	d.send = func(string, string, any) error { return nil }
	require.NoError(t, d.Send(context.Background(), Notification{Title: "Alarm"}))
}

// TestLog_NeverFails keeps headless delivery infallible.
func TestLog_NeverFails(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewLog().Send(context.Background(), Notification{ID: "1", Title: "t", Message: "m"}))
}
