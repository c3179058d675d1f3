// Package version exposes build metadata for clockd and clockctl.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Short and Full render them for CLI output and logs.
package version
