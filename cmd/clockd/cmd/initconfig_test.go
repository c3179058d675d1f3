package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/hydration-clock/internal/config"
)

// TestInitCmd writes defaults once and refuses to overwrite without --force.
func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	rootCmd.SetArgs([]string{"init", "--config", path})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "Settings written to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	require.NoError(t, os.WriteFile(path, []byte("notifier: log\n"), config.DefaultFilePermissions))

	rootCmd.SetArgs([]string{"init", "--config", path})
	require.ErrorIs(t, rootCmd.Execute(), errConfigExists)

	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.NotifierLog, cfg.Notifier)

	rootCmd.SetArgs([]string{"init", "--config", path, "--force"})
	require.NoError(t, rootCmd.Execute())

	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.NotifierDesktop, cfg.Notifier)

	force = false
}
