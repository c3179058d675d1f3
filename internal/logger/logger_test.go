package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers checks that named loggers and fields travel through the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)

	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "clockd")
	ctx = WithKV(ctx, "component", "scheduler")

	InfoKV(ctx, "Alarm fired", "time", "10:30")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "clockd", entries[0].LoggerName)
	require.Equal(t, "Alarm fired", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "scheduler", fields["component"])
	require.Equal(t, "10:30", fields["time"])
}

// TestFromContext_FallsBackToGlobal returns the global logger for bare contexts.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestSetup_RejectsUnknownLevel makes sure configuration mistakes surface early.
func TestSetup_RejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := Setup(Options{Level: "loud"})
	require.ErrorIs(t, err, errUnknownLevel)
}

// TestSetup_RejectsUnknownFileLevel validates the file level before touching the logger.
func TestSetup_RejectsUnknownFileLevel(t *testing.T) {
	t.Parallel()

	_, err := Setup(Options{File: filepath.Join(t.TempDir(), "clock.log"), FileLevel: "loud"})
	require.ErrorIs(t, err, errUnknownLevel)
}

// TestWithLevel drops entries below the pinned level, also on derived loggers.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core, WithLevel(zapcore.WarnLevel)).Sugar()

	log.Info("Reminder emitted")
	log.With("index", 0).Debug("Alarm armed")
	log.Warn("Notification dropped")
	log.With("index", 1).Errorw("Alarm notification failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "Notification dropped", entries[0].Message)
	require.Equal(t, "Alarm notification failed", entries[1].Message)
	require.EqualValues(t, 1, entries[1].ContextMap()["index"])
}

// TestSetup_FileKeepsOwnLevel writes debug entries to the file while the
// console only shows errors. It replaces the global logger, so it does not
// run in parallel.
func TestSetup_FileKeepsOwnLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "clock.log")

	closeLog, err := Setup(Options{Level: "error", File: path, FileLevel: "debug"})
	require.NoError(t, err)

	t.Cleanup(func() {
		SetLevel(zapcore.InfoLevel)
		setLogger(New(defaultLevel))
	})

	ctx := context.Background()

	DebugKV(ctx, "Alarm check", "armed", 1)
	SetLevel(zapcore.WarnLevel)
	Info(ctx, "Reminder emitted")

	// The console is at warn now; the file is pinned to debug.
	require.False(t, defaultLevel.Enabled(zapcore.InfoLevel))

	closeLog()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"message":"Alarm check"`)
	require.Contains(t, string(contents), `"armed":1`)
	require.Contains(t, string(contents), `"message":"Reminder emitted"`)
	require.Contains(t, string(contents), `"level":"debug"`)
}
