package cmd

import (
	"fmt"

	"github.com/brk3/habitcal/internal/nudge"
	"github.com/brk3/habitcal/internal/nudge/resend"

	"github.com/spf13/cobra"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habit streaks expiring within a certain window",
	Long: `The "nudge" command emails nudge.email through Resend when a streak will
lapse at midnight UTC within nudge.window. Run it from cron.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNudge(cmd)
	},
}

func runNudge(cmd *cobra.Command) error {
	n, err := resend.New(cfg.Nudge.ResendAPIKey, cfg.Nudge.From, cfg.Nudge.Email, "")
	if err != nil {
		return fmt.Errorf("nudge is not configured: %w", err)
	}
	count, err := nudge.Run(cmd.Context(), newClient(), n, timeNow(), cfg.Nudge.Window)
	if err != nil {
		return err
	}
	cmd.Printf("Nudged about %d habit(s)\n", count)
	return nil
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
}
