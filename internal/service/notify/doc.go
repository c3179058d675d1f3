// Package notify delivers notifications to the desktop.
//
// A Notifier talks to one platform mechanism (beeep, D-Bus or the log). The
// Dispatcher sits in front of it: Notify only enqueues, and a single worker
// goroutine performs the potentially slow platform call, logging and counting
// failures instead of returning them. Schedulers therefore never block on,
// or see errors from, the notification subsystem.
package notify
