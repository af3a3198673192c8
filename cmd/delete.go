package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete HABIT",
	Short: "Delete a habit and its history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteHabit(cmd, strings.Join(args, " "))
	},
}

func deleteHabit(cmd *cobra.Command, ref string) error {
	c := newClient()
	h, err := c.FindHabit(cmd.Context(), ref)
	if err != nil {
		return err
	}
	if err := c.DeleteHabit(cmd.Context(), h.ID); err != nil {
		return fmt.Errorf("error deleting habit: %w", err)
	}
	cmd.Printf("Deleted habit %s\n", h.Name)
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
