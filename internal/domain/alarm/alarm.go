package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// hoursPerDay bounds TimeOfDay.Hour.
	hoursPerDay = 24
	// minutesPerHour bounds TimeOfDay.Minute.
	minutesPerHour = 60
)

var (
	// ErrOutOfRange is returned when an alarm index does not exist.
	ErrOutOfRange = errors.New("alarm index out of range")
	// ErrInvalidTime is returned when an hour or minute is outside its range
	// or a textual time cannot be parsed.
	ErrInvalidTime = errors.New("invalid time of day")
)

// TimeOfDay is a wall-clock time without date or timezone.
type TimeOfDay struct {
	// Hour is in the range 0-23.
	Hour int
	// Minute is in the range 0-59.
	Minute int
}

// NewTimeOfDay validates hour and minute and returns the time of day.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{
		Hour:   hour,
		Minute: minute,
	}

	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}

	return t, nil
}

// ParseTimeOfDay parses "HH:MM" (or "H:MM").
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hourText, minuteText, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || !isDigits(hourText, 1, 2) || !isDigits(minuteText, 2, 2) {
		return TimeOfDay{}, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: hour %q", ErrInvalidTime, hourText)
	}

	minute, err := strconv.Atoi(minuteText)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: minute %q", ErrInvalidTime, minuteText)
	}

	return NewTimeOfDay(hour, minute)
}

// isDigits reports whether s is between minLen and maxLen ASCII digits.
func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// TimeOf extracts the hour and minute of t in its own location.
func TimeOf(t time.Time) TimeOfDay {
	return TimeOfDay{
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Validate reports ErrInvalidTime when a component is out of range.
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour >= hoursPerDay {
		return fmt.Errorf("%w: hour %d not in 0-23", ErrInvalidTime, t.Hour)
	}

	if t.Minute < 0 || t.Minute >= minutesPerHour {
		return fmt.Errorf("%w: minute %d not in 0-59", ErrInvalidTime, t.Minute)
	}

	return nil
}

// String renders the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Alarm is a one-shot daily alarm.
type Alarm struct {
	// Time is when the alarm fires.
	Time TimeOfDay
	// Armed reports whether the alarm is eligible to fire.
	Armed bool
}

// New returns an armed alarm for t.
func New(t TimeOfDay) Alarm {
	return Alarm{
		Time:  t,
		Armed: true,
	}
}

// Due reports whether the alarm is armed and set to the given time of day.
func (a Alarm) Due(now TimeOfDay) bool {
	return a.Armed && a.Time == now
}

// Entry is an alarm together with its registry index.
type Entry struct {
	// Index is the alarm position in insertion order.
	Index int
	// Alarm is a copy of the alarm at snapshot time.
	Alarm Alarm
}

// Status is the read-only view of the widget rendered by front-ends.
type Status struct {
	// Now is the current time of day.
	Now TimeOfDay
	// RemindersEnabled reports whether hydration reminders are being emitted.
	RemindersEnabled bool
	// Alarms lists every alarm in registry order.
	Alarms []Entry
}

// IndexError describes an alarm index outside the registry.
type IndexError struct {
	// Index is the rejected index.
	Index int
	// Len is the registry size at the time of the call.
	Len int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("alarm index %d out of range [0, %d)", e.Index, e.Len)
}

// Unwrap makes errors.Is(err, ErrOutOfRange) hold.
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
