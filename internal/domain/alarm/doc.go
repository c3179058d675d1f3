// Package alarm contains core domain types for the clock widget.
//
// It defines TimeOfDay (an hour and minute without date or zone), Alarm (a
// time of day plus an armed flag), Entry (an alarm and its position in the
// registry) and Status (the read-only view rendered by front-ends), together
// with the error values reported for bad user input.
package alarm
