// Package config defines the settings shared by clockd and clockctl and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the control API address, the scheduler cadences, the
// reminder message pool, the notification backend and the logging, metrics
// and lock file locations. Missing values are filled with defaults by
// Validate.
package config
