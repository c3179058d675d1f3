package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "dev"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// readBuildInfo is swapped in tests.
//
//nolint:gochecknoglobals // Test seam for runtime/debug.
var readBuildInfo = debug.ReadBuildInfo

// Short returns the semantic version. Binaries built with `go install` and no
// ldflags report the module version instead of "dev".
func Short() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

// Full returns a human-readable version string for app with commit, build
// time and Go runtime.
func Full(app string) string {
	return fmt.Sprintf("%s version: %s, commit: %s, built at: %s, go: %s",
		app, Short(), Commit, BuildTime, runtime.Version())
}
