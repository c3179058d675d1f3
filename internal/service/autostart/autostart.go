// Package autostart registers clockd to start with the desktop session.
package autostart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"

	"github.com/oshokin/hydration-clock/internal/logger"
)

const (
	appName        = "hydration-clock"
	appDisplayName = "Hydration Clock"
)

// Entry is a session autostart entry.
type Entry interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// NewApp describes the current clockd executable started with configPath.
func NewApp(configPath string) (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	if execPath, err = filepath.EvalSymlinks(execPath); err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	return newApp(execPath, configPath)
}

func newApp(execPath, configPath string) (*autostart.App, error) {
	exec := []string{execPath}

	if configPath != "" {
		// The session starts us from an unrelated working directory.
		absConfig, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}

		exec = append(exec, "--config", absConfig)
	}

	return &autostart.App{
		Name:        appName,
		DisplayName: appDisplayName,
		Exec:        exec,
	}, nil
}

// Set enables or disables entry. It is a no-op when already in that state.
func Set(ctx context.Context, entry Entry, enable bool) error {
	if entry.IsEnabled() == enable {
		logger.InfoKV(ctx, "Autostart unchanged", "enabled", enable)

		return nil
	}

	if enable {
		if err := entry.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}

		logger.Info(ctx, "Autostart enabled")

		return nil
	}

	if err := entry.Disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}

	logger.Info(ctx, "Autostart disabled")

	return nil
}
