package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary HABIT",
	Short: "Show streak and history stats for a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return summary(cmd, strings.Join(args, " "))
	},
}

func summary(cmd *cobra.Command, ref string) error {
	c := newClient()
	h, err := c.FindHabit(cmd.Context(), ref)
	if err != nil {
		return err
	}
	s, err := c.GetHabitSummary(cmd.Context(), h.ID)
	if err != nil {
		return fmt.Errorf("error fetching summary: %w", err)
	}

	first := s.FirstLogged
	if first == "" {
		first = "never"
	}
	cmd.Println(titleStyle.Render(s.Name))
	cmd.Printf("  Current streak:  %d\n", s.CurrentStreak)
	cmd.Printf("  Longest streak:  %d\n", s.LongestStreak)
	cmd.Printf("  Days done:       %d\n", s.TotalDaysDone)
	cmd.Printf("  This month:      %d\n", s.ThisMonth)
	cmd.Printf("  Best month:      %d\n", s.BestMonth)
	cmd.Printf("  First logged:    %s\n", first)
	return nil
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
