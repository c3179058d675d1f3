// Package clock supplies the current local time to the schedulers.
package clock

import "time"

// Source returns the current time. Implementations must be side-effect free.
type Source interface {
	Now() time.Time
}

// System reads the host clock in the local timezone.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Func adapts an ordinary function to Source.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}
