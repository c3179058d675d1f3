//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/hydration-clock/internal/api/grpc/clock"
	"github.com/oshokin/hydration-clock/internal/config"
	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

// Client wraps the gRPC ClockService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the daemon.
	conn *grpc.ClientConn
	// api is the ClockService client stub.
	api clock.ClockServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// actor is attached to every call when set.
	actor *clock.Actor
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor identifies the caller on every request.
func WithActor(actor clock.Actor) Option {
	return func(c *Client) {
		c.actor = &actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the daemon's control API.
// Note: this uses insecure transport credentials; the daemon listens on
// loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial clock daemon: %w", err)
	}

	client := newClient(clock.NewClockServiceClient(conn), opts...)
	client.conn = conn

	return client, nil
}

func newClient(api clock.ClockServiceClient, opts ...Option) *Client {
	client := &Client{
		api:         api,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// ToggleReminders flips the reminder flag and returns the new value.
func (c *Client) ToggleReminders(ctx context.Context) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ToggleReminders(callCtx, new(emptypb.Empty))
	if err != nil {
		return false, fmt.Errorf("toggle reminders: %w", err)
	}

	return resp.GetValue(), nil
}

// SetReminders sets the reminder flag.
func (c *Client) SetReminders(ctx context.Context, enabled bool) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.SetReminders(callCtx, wrapperspb.Bool(enabled))
	if err != nil {
		return false, fmt.Errorf("set reminders: %w", err)
	}

	return resp.GetValue(), nil
}

// AddAlarm appends an armed alarm and returns its index.
func (c *Client) AddAlarm(ctx context.Context, at domain.TimeOfDay) (int, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.AddAlarm(callCtx, wrapperspb.String(at.String()))
	if err != nil {
		return 0, fmt.Errorf("add alarm: %w", err)
	}

	return int(resp.GetValue()), nil
}

// EditAlarm changes the time of the alarm at index.
func (c *Client) EditAlarm(ctx context.Context, index int, at domain.TimeOfDay) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.EditAlarm(callCtx, clock.EditRequest(index, at)); err != nil {
		return fmt.Errorf("edit alarm: %w", err)
	}

	return nil
}

// ToggleAlarm flips the armed flag of the alarm at index.
func (c *Client) ToggleAlarm(ctx context.Context, index int) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ToggleAlarm(callCtx, wrapperspb.Int64(int64(index)))
	if err != nil {
		return false, fmt.Errorf("toggle alarm: %w", err)
	}

	return resp.GetValue(), nil
}

// SetAlarmArmed arms or disarms the alarm at index.
func (c *Client) SetAlarmArmed(ctx context.Context, index int, armed bool) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.SetAlarmArmed(callCtx, clock.ArmRequest(index, armed)); err != nil {
		return fmt.Errorf("set alarm armed: %w", err)
	}

	return nil
}

// Status retrieves the daemon's current view.
func (c *Client) Status(ctx context.Context) (domain.Status, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetStatus(callCtx, new(emptypb.Empty))
	if err != nil {
		return domain.Status{}, fmt.Errorf("get status: %w", err)
	}

	status, err := clock.StatusFromProto(resp)
	if err != nil {
		return domain.Status{}, fmt.Errorf("decode status: %w", err)
	}

	return status, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The actor, if
// any, rides along as metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.actor != nil {
		ctx = clock.WithActor(ctx, *c.actor)
	}

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
