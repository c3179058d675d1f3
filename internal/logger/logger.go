package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// global is the shared logger instance used throughout the application.
	//nolint:gochecknoglobals // Logger is used all over the project, so it's okay.
	global *zap.SugaredLogger
	// defaultLevel is the minimum log level for messages to be processed.
	//nolint:gochecknoglobals // If the logging level is not set, the application will have no logs.
	defaultLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

const (
	// fileMaxSizeMB is the size at which the log file is rotated.
	fileMaxSizeMB = 10
	// fileMaxBackups is the number of rotated files kept.
	fileMaxBackups = 3
	// fileMaxAgeDays is how long rotated files are kept.
	fileMaxAgeDays = 28
	// logDirPermissions is used when creating the log file directory.
	logDirPermissions = 0o755
)

// errUnknownLevel is returned by Setup for an unparsable level.
var errUnknownLevel = errors.New("unknown log level")

func init() { //nolint:gochecknoinits // If the logging level is not set, the application will have no logs.
	setLogger(New(defaultLevel))
}

// Options configures the global logger.
type Options struct {
	// Level is a textual level understood by ParseLogLevel; empty keeps the current level.
	Level string
	// File is an optional path of a rotating JSON log file.
	File string
	// FileLevel pins the file to its own level; empty follows Level.
	FileLevel string
}

// New creates a *zap.SugaredLogger writing to stdout in console format.
// If the level is nil, the package default level is used.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = defaultLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		level,
	)

	return zap.New(core, options...).Sugar()
}

// Setup applies opts to the global logger. When opts.File is set, entries are
// written both to stdout and to a size-rotated JSON file, filtered by
// opts.FileLevel when it is set. The returned
// function flushes and closes the file.
func Setup(opts Options) (func(), error) {
	if opts.Level != "" {
		level, ok := ParseLogLevel(opts.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownLevel, opts.Level)
		}

		SetLevel(level)
	}

	var fileOptions []zap.Option

	if opts.FileLevel != "" {
		level, ok := ParseLogLevel(opts.FileLevel)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownLevel, opts.FileLevel)
		}

		fileOptions = append(fileOptions, WithLevel(level))
	}

	if opts.File == "" {
		return func() {
			_ = global.Sync()
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), logDirPermissions); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Clean(opts.File),
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	}

	fileConfig := consoleEncoderConfig()
	fileConfig.TimeKey = "time"
	fileConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	fileCore := zap.New(
		zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(fileWriter), defaultLevel),
		fileOptions...,
	).Core()

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig()), zapcore.AddSync(os.Stdout), defaultLevel),
		fileCore,
	)

	setLogger(zap.New(core).Sugar())

	return func() {
		_ = global.Sync()
		_ = fileWriter.Close()
	}, nil
}

// consoleEncoderConfig is the shared encoder configuration.
func consoleEncoderConfig() zapcore.EncoderConfig {
	//nolint:exhaustruct // I'm okay with default encoder configuration values.
	return zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: ", ",
	}
}

// ParseLogLevel converts string input to zap log level.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Logger returns the global logger.
func Logger() *zap.SugaredLogger {
	return global
}

// setLogger replaces the global logger. Not safe for concurrent use.
func setLogger(l *zap.SugaredLogger) {
	global = l
}

// SetLevel sets the log level for the global logger.
func SetLevel(level zapcore.Level) {
	//nolint: errcheck // No need to check the error here.
	defer global.Sync()

	defaultLevel.SetLevel(level)
}

// Debug writes a debug level message using the logger from the context.
func Debug(ctx context.Context, args ...any) {
	FromContext(ctx).Debug(args...)
}

// DebugKV writes a message and key-value pairs
// at the debug level using the logger from the context.
func DebugKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Debugw(message, kvs...)
}

// Info writes an information level message using the logger from the context.
func Info(ctx context.Context, args ...any) {
	FromContext(ctx).Info(args...)
}

// InfoKV writes a message and key-value pairs
// at the information level using the logger from the context.
func InfoKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Infow(message, kvs...)
}

// WarnKV writes a message and key-value pairs
// at the warning level using the logger from the context.
func WarnKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Warnw(message, kvs...)
}

// ErrorKV writes a message and key-value pairs
// at the error level using the logger from the context.
func ErrorKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Errorw(message, kvs...)
}
