package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/hydration-clock/internal/config"
	"github.com/oshokin/hydration-clock/internal/service/daemon"
	"github.com/oshokin/hydration-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// notifier overrides the notification backend.
	notifier string
	// reminders sets the initial reminder state when the flag is given.
	reminders bool

	// rootCmd represents the base command for running the clock daemon.
	rootCmd = &cobra.Command{
		Use:   "clockd [listen-address]",
		Short: "Run the hydration clock daemon.",
		Long: `Starts the clock daemon that keeps the time, fires one-shot daily alarms and
pushes hydration reminders as desktop notifications.

The daemon is controlled with clockctl over gRPC. The control address comes from
the configuration file and can be overridden with an argument (e.g., 127.0.0.1:6000).
Only one daemon runs per lock file; alarms live in memory and are lost on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &daemon.Options{
				ConfigPath: configPath,
				Notifier:   notifier,
			}

			if len(args) > 0 {
				options.ListenAddress = args[0]
			}

			if cmd.Flags().Changed("reminders") {
				options.Reminders = &reminders
			}

			return daemon.Run(ctx, options)
		},
	}
)

// Execute runs the clockd CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&notifier, "notifier", "n", "", "notification backend: desktop, dbus or log (overrides config)")
	rootCmd.Flags().
		BoolVarP(&reminders, "reminders", "r", false, "start with hydration reminders on or off (overrides config)")

	rootCmd.AddCommand(autostartCmd, initCmd)
}
