package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the clock binaries.
type Config struct {
	// ControlAddress is the gRPC address clockd listens on and clockctl dials.
	ControlAddress string `yaml:"control_addr"`
	// Timeout is the duration for control API calls.
	Timeout time.Duration `yaml:"timeout"`
	// AlarmCheckInterval is how often alarms are compared with the clock.
	// It must not exceed one minute, otherwise a matching minute can be skipped.
	AlarmCheckInterval time.Duration `yaml:"alarm_check_interval"`
	// DisplayInterval is how often the displayed clock is refreshed.
	DisplayInterval time.Duration `yaml:"display_interval"`
	// ReminderInterval is the cadence of hydration reminders.
	ReminderInterval time.Duration `yaml:"reminder_interval"`
	// ReminderMessages replaces the built-in reminder pool when not empty.
	ReminderMessages []string `yaml:"reminder_messages,omitempty"`
	// RemindersEnabled is the reminder state at start-up.
	RemindersEnabled bool `yaml:"reminders_enabled"`
	// Notifier selects the notification backend: desktop, dbus or log.
	Notifier string `yaml:"notifier"`
	// NotificationQueue is the number of notifications buffered for delivery.
	NotificationQueue int `yaml:"notification_queue"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFile is an optional rotating log file path.
	LogFile string `yaml:"log_file,omitempty"`
	// LogFileLevel gives the log file its own level; empty follows LogLevel.
	LogFileLevel string `yaml:"log_file_level,omitempty"`
	// MetricsAddress enables the Prometheus endpoint when set.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// LockFile guards against running two daemons at once.
	LockFile string `yaml:"lock_file"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "hydration-clock.yaml"

	// DefaultControlAddress is the default gRPC control address.
	DefaultControlAddress = "127.0.0.1:50771"

	// DefaultLockFilename is the default single-instance lock file.
	DefaultLockFilename = "hydration-clock.lock"

	// DefaultTimeout is the default duration for control API calls.
	DefaultTimeout = 5 * time.Second

	// DefaultAlarmCheckInterval samples the clock several times per minute.
	DefaultAlarmCheckInterval = 15 * time.Second

	// MaxAlarmCheckInterval is the coarsest cadence that still sees every minute.
	MaxAlarmCheckInterval = time.Minute

	// DefaultDisplayInterval is the default clock refresh cadence.
	DefaultDisplayInterval = 30 * time.Second

	// DefaultReminderInterval is the reference reminder cadence.
	DefaultReminderInterval = 5 * time.Second

	// DefaultNotificationQueue is the default delivery buffer size.
	DefaultNotificationQueue = 16

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Notifier backend names.
const (
	NotifierDesktop = "desktop"
	NotifierDBus    = "dbus"
	NotifierLog     = "log"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errAlarmCheckTooCoarse is returned when alarms could miss their minute.
	errAlarmCheckTooCoarse = errors.New("alarm_check_interval must not exceed one minute")
	// errNegativeInterval is returned for negative durations.
	errNegativeInterval = errors.New("intervals must not be negative")
	// errUnknownNotifier is returned for an unsupported notifier name.
	errUnknownNotifier = errors.New("unknown notifier")
	// errBlankReminder is returned when a configured reminder message is blank.
	errBlankReminder = errors.New("reminder_messages must not contain blank entries")
	// errUnknownLogLevel is returned for an unsupported log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills missing values with defaults.
//
//nolint:cyclop // One flat check per field reads better than helpers.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ControlAddress == "" {
		settings.ControlAddress = DefaultControlAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ControlAddress); err != nil {
		return fmt.Errorf("invalid control address: %w", err)
	}

	if settings.Timeout < 0 || settings.AlarmCheckInterval < 0 ||
		settings.DisplayInterval < 0 || settings.ReminderInterval < 0 {
		return errNegativeInterval
	}

	settings.Timeout = durationOrDefault(settings.Timeout, DefaultTimeout)
	settings.AlarmCheckInterval = durationOrDefault(settings.AlarmCheckInterval, DefaultAlarmCheckInterval)
	settings.DisplayInterval = durationOrDefault(settings.DisplayInterval, DefaultDisplayInterval)
	settings.ReminderInterval = durationOrDefault(settings.ReminderInterval, DefaultReminderInterval)

	if settings.AlarmCheckInterval > MaxAlarmCheckInterval {
		return fmt.Errorf("%w: got %s", errAlarmCheckTooCoarse, settings.AlarmCheckInterval)
	}

	for _, message := range settings.ReminderMessages {
		if strings.TrimSpace(message) == "" {
			return errBlankReminder
		}
	}

	settings.Notifier = strings.ToLower(strings.TrimSpace(settings.Notifier))
	switch settings.Notifier {
	case "":
		settings.Notifier = NotifierDesktop
	case NotifierDesktop, NotifierDBus, NotifierLog:
	default:
		return fmt.Errorf("%w: %q", errUnknownNotifier, settings.Notifier)
	}

	if settings.NotificationQueue <= 0 {
		settings.NotificationQueue = DefaultNotificationQueue
	}

	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))
	switch settings.LogLevel {
	case "":
		settings.LogLevel = DefaultLogLevel
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	settings.LogFileLevel = strings.ToLower(strings.TrimSpace(settings.LogFileLevel))
	switch settings.LogFileLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogFileLevel)
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
	}

	if settings.LockFile == "" {
		settings.LockFile = DefaultLockFilename
	}

	return nil
}

// durationOrDefault replaces a zero duration with def.
func durationOrDefault(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}

	return d
}
