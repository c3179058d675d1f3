package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate_Defaults checks that an empty config is completed with defaults.
func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	settings := new(Config)
	require.NoError(t, Validate(settings))

	require.Equal(t, DefaultControlAddress, settings.ControlAddress)
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultAlarmCheckInterval, settings.AlarmCheckInterval)
	require.Equal(t, DefaultDisplayInterval, settings.DisplayInterval)
	require.Equal(t, DefaultReminderInterval, settings.ReminderInterval)
	require.Equal(t, NotifierDesktop, settings.Notifier)
	require.Equal(t, DefaultNotificationQueue, settings.NotificationQueue)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)
	require.Equal(t, DefaultLockFilename, settings.LockFile)
	require.False(t, settings.RemindersEnabled)
}

// TestValidate_Rejects covers each validation failure.
func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]*Config{
		"bad address":          {ControlAddress: "bad:address"},
		"coarse alarm check":   {AlarmCheckInterval: 50 * time.Minute},
		"negative interval":    {ReminderInterval: -time.Second},
		"unknown notifier":     {Notifier: "pigeon"},
		"blank reminder":       {ReminderMessages: []string{"Drink!", " "}},
		"unknown log level":    {LogLevel: "chatty"},
		"unknown file level":   {LogFileLevel: "verbose"},
		"bad metrics address":  {MetricsAddress: "nowhere:port"},
		"nil config is caught": nil,
	}

	for name, settings := range cases {
		require.Error(t, Validate(settings), name)
	}

	require.ErrorIs(t, Validate(&Config{AlarmCheckInterval: 61 * time.Second}), errAlarmCheckTooCoarse)
	require.NoError(t, Validate(&Config{AlarmCheckInterval: time.Minute}))

	settings := &Config{LogFileLevel: " DEBUG "}
	require.NoError(t, Validate(settings))
	require.Equal(t, "debug", settings.LogFileLevel)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ControlAddress:     "127.0.0.1:50051",
		AlarmCheckInterval: 10 * time.Second,
		ReminderInterval:   20 * time.Minute,
		ReminderMessages:   []string{"Water!", "More water!"},
		RemindersEnabled:   true,
		Notifier:           NotifierLog,
		MetricsAddress:     "127.0.0.1:9091",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFileUsesDefaults lets the widget start without a config file.
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	loaded, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), loaded)
}

// TestLoad_Malformed reports YAML errors.
func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("control_addr: [oops"), DefaultFilePermissions))

	_, err := Load(path)
	require.Error(t, err)
}
