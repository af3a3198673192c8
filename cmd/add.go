package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a habit",
	Long: `The "add" command creates a habit. Multi-word names may be passed
unquoted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return add(cmd, strings.Join(args, " "))
	},
}

func add(cmd *cobra.Command, name string) error {
	h, err := newClient().AddHabit(cmd.Context(), name, addDescription)
	if err != nil {
		return fmt.Errorf("error adding habit: %w", err)
	}
	cmd.Printf("Added habit %s (id %s)\n", titleStyle.Render(h.Name), h.ID)
	return nil
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "optional description")
	rootCmd.AddCommand(addCmd)
}
