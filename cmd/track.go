package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track HABIT",
	Short: "Mark a habit done today, or undo today's mark",
	Long: `The "track" command toggles today's completion for a habit, given by id
or name. Running it twice on the same day undoes the first run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return track(cmd, strings.Join(args, " "))
	},
}

func track(cmd *cobra.Command, ref string) error {
	c := newClient()
	found, err := c.FindHabit(cmd.Context(), ref)
	if err != nil {
		return err
	}
	h, err := c.ToggleHabit(cmd.Context(), found.ID)
	if err != nil {
		return fmt.Errorf("error tracking habit: %w", err)
	}

	if len(h.Completions) > len(found.Completions) {
		cmd.Printf("%s %s done today, %s\n", doneStyle.Render("[x]"), titleStyle.Render(h.Name),
			streakStyle.Render(fmt.Sprintf("streak %d", h.CurrentStreak)))
	} else {
		cmd.Printf("%s %s unmarked for today, %s\n", mutedStyle.Render("[ ]"), titleStyle.Render(h.Name),
			streakStyle.Render(fmt.Sprintf("streak %d", h.CurrentStreak)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
