package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/oshokin/hydration-clock/internal/config"
	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
	"github.com/oshokin/hydration-clock/internal/logger"
	"github.com/oshokin/hydration-clock/internal/service/common"
)

// Options configures how clockctl reaches the daemon.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides the control address from config when specified.
	ServerAddress string

	// Out receives rendered results, os.Stdout when nil.
	Out io.Writer
}

// API is the daemon surface the actions depend on.
type API interface {
	ToggleReminders(ctx context.Context) (bool, error)
	SetReminders(ctx context.Context, enabled bool) (bool, error)
	AddAlarm(ctx context.Context, at domain.TimeOfDay) (int, error)
	EditAlarm(ctx context.Context, index int, at domain.TimeOfDay) error
	ToggleAlarm(ctx context.Context, index int) (bool, error)
	SetAlarmArmed(ctx context.Context, index int, armed bool) error
	Status(ctx context.Context) (domain.Status, error)
}

// Actions renders control commands against an API.
type Actions struct {
	api API
	out io.Writer
}

// errBadIndex is returned when an index argument is not a non-negative integer.
var errBadIndex = errors.New("alarm index must be a non-negative integer")

// NewActions creates actions writing to out.
func NewActions(api API, out io.Writer) *Actions {
	if out == nil {
		out = os.Stdout
	}

	return &Actions{
		api: api,
		out: out,
	}
}

// Run dials the daemon and performs action with it.
func Run(ctx context.Context, opts *Options, action func(context.Context, *Actions) error) error {
	ctx = logger.WithName(ctx, "clockctl")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	serverAddress := cfg.ControlAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	clientOpts := []common.Option{common.WithCallTimeout(cfg.Timeout)}

	// Identification is best effort; the daemon accepts anonymous calls.
	if actor, err := common.DetectActor(); err == nil {
		clientOpts = append(clientOpts, common.WithActor(actor))
	} else {
		logger.DebugKV(ctx, "Unable to detect actor", "error", err)
	}

	client, err := common.Dial(ctx, serverAddress, clientOpts...)
	if err != nil {
		return err
	}

	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Connected to daemon", "server_address", serverAddress)

	return action(ctx, NewActions(client, opts.Out))
}

// ParseIndex parses an alarm index argument.
func ParseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q", errBadIndex, s)
	}

	return index, nil
}

// ToggleReminders flips reminders and prints the new state.
func (a *Actions) ToggleReminders(ctx context.Context) error {
	enabled, err := a.api.ToggleReminders(ctx)
	if err != nil {
		return err
	}

	return a.printf("Reminders %s\n", onOff(enabled))
}

// SetReminders turns reminders on or off.
func (a *Actions) SetReminders(ctx context.Context, enabled bool) error {
	enabled, err := a.api.SetReminders(ctx, enabled)
	if err != nil {
		return err
	}

	return a.printf("Reminders %s\n", onOff(enabled))
}

// AddAlarm parses text as HH:MM and adds an armed alarm.
func (a *Actions) AddAlarm(ctx context.Context, text string) error {
	at, err := domain.ParseTimeOfDay(text)
	if err != nil {
		return err
	}

	index, err := a.api.AddAlarm(ctx, at)
	if err != nil {
		return err
	}

	return a.printf("Alarm %d set for %s\n", index, at)
}

// EditAlarm changes the time of an alarm.
func (a *Actions) EditAlarm(ctx context.Context, index int, text string) error {
	at, err := domain.ParseTimeOfDay(text)
	if err != nil {
		return err
	}

	if err := a.api.EditAlarm(ctx, index, at); err != nil {
		return err
	}

	return a.printf("Alarm %d moved to %s\n", index, at)
}

// ToggleAlarm flips the armed flag of an alarm.
func (a *Actions) ToggleAlarm(ctx context.Context, index int) error {
	armed, err := a.api.ToggleAlarm(ctx, index)
	if err != nil {
		return err
	}

	return a.printf("Alarm %d %s\n", index, armedText(armed))
}

// SetAlarmArmed arms or disarms an alarm.
func (a *Actions) SetAlarmArmed(ctx context.Context, index int, armed bool) error {
	if err := a.api.SetAlarmArmed(ctx, index, armed); err != nil {
		return err
	}

	return a.printf("Alarm %d %s\n", index, armedText(armed))
}

// Status prints the clock, the reminder state and the alarm table.
func (a *Actions) Status(ctx context.Context) error {
	status, err := a.api.Status(ctx)
	if err != nil {
		return err
	}

	return renderStatus(a.out, status)
}

func renderStatus(out io.Writer, status domain.Status) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(w, "Time\t%s\n", status.Now)
	_, _ = fmt.Fprintf(w, "Reminders\t%s\n", onOff(status.RemindersEnabled))

	if err := w.Flush(); err != nil {
		return err
	}

	if len(status.Alarms) == 0 {
		_, err := fmt.Fprintln(out, "No alarms")

		return err
	}

	_, _ = fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "INDEX\tTIME\tSTATE")

	for _, entry := range status.Alarms {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", entry.Index, entry.Alarm.Time, armedText(entry.Alarm.Armed))
	}

	return w.Flush()
}

func (a *Actions) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(a.out, format, args...)

	return err
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}

	return "off"
}

func armedText(armed bool) string {
	if armed {
		return "armed"
	}

	return "disarmed"
}
