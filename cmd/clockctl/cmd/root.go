package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/hydration-clock/internal/config"
	"github.com/oshokin/hydration-clock/internal/service/client"
	"github.com/oshokin/hydration-clock/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the control address from config.
	serverAddress string

	// rootCmd represents the base command for controlling the daemon.
	rootCmd = &cobra.Command{
		Use:   "clockctl",
		Short: "Control a running hydration clock daemon.",
		Long: `Sends commands to clockd over gRPC: switch hydration reminders,
add, edit and arm alarms, and show the current status.

The daemon address is read from the configuration file unless --server is given.`,
		SilenceUsage: true,
	}
)

// run executes action against the daemon with signal-aware cancellation.
func run(cmd *cobra.Command, action func(context.Context, *client.Actions) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return client.Run(ctx, &client.Options{
		ConfigPath:    cfgPath,
		ServerAddress: serverAddress,
		Out:           cmd.OutOrStdout(),
	}, action)
}

// Execute runs the clockctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&serverAddress, "server", "s", "", "daemon address (overrides config)")

	rootCmd.AddCommand(remindersCmd(), alarmCmd(), statusCmd())
}
