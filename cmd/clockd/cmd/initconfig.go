package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/hydration-clock/internal/config"
)

// errConfigExists is returned by init when the file is already there.
var errConfigExists = errors.New("settings file already exists, use --force to overwrite it")

// force overwrites an existing configuration file.
//
//nolint:gochecknoglobals // Cobra flag storage.
var force bool

// initCmd writes the default settings to --config.
//
//nolint:gochecknoglobals // Cobra command tree.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings.",
	Long: `Creates the file named by --config with every setting at its default value.
An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !force {
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%w: %s", errConfigExists, configPath)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("check settings file: %w", err)
			}
		}

		if err := config.Save(configPath, config.Default()); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", configPath)

		return nil
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
}
