// Package controller composes the widget core.
//
// Controller owns the alarm registry, both schedulers and the reminder
// enable flag. Run drives two independent schedules: an alarm check that
// samples the clock at least once a minute, and a display refresh that only
// feeds the Listener. UI front-ends call the command methods and re-render
// from the snapshots they return.
package controller
