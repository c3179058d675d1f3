package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oshokin/hydration-clock/internal/service/client"
)

func remindersCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reminders",
		Short: "Switch hydration reminders.",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "toggle",
			Short: "Flip reminders on or off.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, func(ctx context.Context, a *client.Actions) error {
					return a.ToggleReminders(ctx)
				})
			},
		},
		setRemindersCmd("on", true),
		setRemindersCmd("off", false),
	)

	return root
}

func setRemindersCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "Turn reminders " + use + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *client.Actions) error {
				return a.SetReminders(ctx, enabled)
			})
		},
	}
}

func alarmCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alarm",
		Short: "Manage one-shot daily alarms.",
		Long: `Alarms fire once when the clock reaches their HH:MM and then disarm.
Indices are shown by "clockctl status".`,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "add HH:MM",
			Short: "Add an armed alarm.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, a *client.Actions) error {
					return a.AddAlarm(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "edit INDEX HH:MM",
			Short: "Change the time of an alarm, keeping its armed state.",
			Args:  cobra.ExactArgs(2), //nolint:mnd // INDEX and HH:MM.
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := client.ParseIndex(args[0])
				if err != nil {
					return err
				}

				return run(cmd, func(ctx context.Context, a *client.Actions) error {
					return a.EditAlarm(ctx, index, args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "toggle INDEX",
			Short: "Flip the armed state of an alarm.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := client.ParseIndex(args[0])
				if err != nil {
					return err
				}

				return run(cmd, func(ctx context.Context, a *client.Actions) error {
					return a.ToggleAlarm(ctx, index)
				})
			},
		},
		armCmd("arm", true),
		armCmd("disarm", false),
	)

	return root
}

func armCmd(use string, armed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " INDEX",
		Short: "Set an alarm to " + use + "ed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := client.ParseIndex(args[0])
			if err != nil {
				return err
			}

			return run(cmd, func(ctx context.Context, a *client.Actions) error {
				return a.SetAlarmArmed(ctx, index, armed)
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the time, reminder state and alarms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *client.Actions) error {
				return a.Status(ctx)
			})
		},
	}
}
