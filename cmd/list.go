package cmd

import (
	"fmt"
	"time"

	"github.com/brk3/habitcal/pkg/habit"
	"github.com/spf13/cobra"
)

// timeNow is replaced in tests.
var timeNow = time.Now

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long:  `The "list" command lists your habits with their streaks, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return list(cmd)
	},
}

func list(cmd *cobra.Command) error {
	hs, err := newClient().ListHabits(cmd.Context())
	if err != nil {
		return fmt.Errorf("error fetching habits: %w", err)
	}
	if len(hs) == 0 {
		cmd.Println("No habits yet. Add one with \"habitcal add NAME\".")
		return nil
	}

	today := habit.Day(timeNow())
	for _, h := range hs {
		mark := mutedStyle.Render("[ ]")
		if h.CompletedOn(today) {
			mark = doneStyle.Render("[x]")
		}
		cmd.Printf("%s %s %s %s\n",
			mark,
			titleStyle.Render(h.Name),
			streakStyle.Render(fmt.Sprintf("streak %d", h.CurrentStreak)),
			mutedStyle.Render(fmt.Sprintf("(best %d, id %s)", h.LongestStreak, h.ID)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
