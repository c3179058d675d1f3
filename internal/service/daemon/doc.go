// Package daemon runs clockd: it loads settings, takes the instance lock and
// serves the controller over gRPC while the notification worker, the clock
// loops and the optional metrics endpoint run alongside.
package daemon
