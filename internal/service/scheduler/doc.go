// Package scheduler contains the time-driven parts of the widget core.
//
// AlarmScheduler compares a single clock reading against every armed alarm
// and fires (then disarms) the matching ones. ReminderScheduler pushes a
// random hydration reminder at a fixed cadence between Start and Stop.
// Both deliver through a Sink, which must never block the caller.
package scheduler
