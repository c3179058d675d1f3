package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/hydration-clock/internal/logger"
	"github.com/oshokin/hydration-clock/internal/service/autostart"
)

// autostartCmd groups the session autostart subcommands.
//
//nolint:gochecknoglobals // Cobra command tree.
var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting clockd with the desktop session.",
	Long: `Registers or removes clockd from the desktop session autostart entries.
The entry runs this executable with the absolute path of --config.`,
}

// setAutostart builds the RunE of enable and disable.
func setAutostart(enable bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := logger.WithName(context.Background(), "autostart")

		app, err := autostart.NewApp(configPath)
		if err != nil {
			return err
		}

		if err := autostart.Set(ctx, app, enable); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Autostart %s\n", enabledText(enable))

		return nil
	}
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}

	return "disabled"
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	autostartCmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Start clockd when the session starts.",
			Args:  cobra.NoArgs,
			RunE:  setAutostart(true),
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting clockd with the session.",
			Args:  cobra.NoArgs,
			RunE:  setAutostart(false),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether clockd starts with the session.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := autostart.NewApp(configPath)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Autostart %s\n", enabledText(app.IsEnabled()))

				return nil
			},
		},
	)
}
