package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/habitcal/pkg/leave"
	"github.com/spf13/cobra"
)

var (
	leaveMonth string
	leaveLimit int
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Work with the team leave calendar",
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests, date ascending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return leaveList(cmd)
	},
}

var leaveRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the latest leave requests first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return leaveRecent(cmd)
	},
}

var leaveAddCmd = &cobra.Command{
	Use:   "add DATE TYPE [COMMENT...]",
	Short: "Add a leave request for --employee",
	Long: `The "leave add" command records leave on DATE (YYYY-MM-DD). TYPE is one of
the names printed by "leave types". A comment is required for, and only kept
with, the comment type.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return leaveAdd(cmd, args[0], leave.Type(args[1]), strings.Join(args[2:], " "))
	},
}

var leaveDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete one of your own leave requests",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return leaveDelete(cmd, args[0])
	},
}

var leaveTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List leave types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range leave.Types {
			cmd.Printf("%-14s %s\n", t, mutedStyle.Render(t.Label()))
		}
	},
}

func leaveList(cmd *cobra.Command) error {
	rs, err := newClient().ListLeave(cmd.Context(), leaveMonth)
	if err != nil {
		return fmt.Errorf("error fetching leave: %w", err)
	}
	printRequests(cmd, rs)
	return nil
}

func leaveRecent(cmd *cobra.Command) error {
	rs, err := newClient().RecentLeave(cmd.Context(), leaveLimit)
	if err != nil {
		return fmt.Errorf("error fetching leave: %w", err)
	}
	printRequests(cmd, rs)
	return nil
}

func leaveAdd(cmd *cobra.Command, date string, typ leave.Type, comment string) error {
	r, err := newClient().AddLeave(cmd.Context(), date, typ, comment)
	if err != nil {
		return fmt.Errorf("error adding leave: %w", err)
	}
	cmd.Printf("Added %s for %s on %s (id %s)\n", r.Entry.Type().Label(), r.EmployeeName, r.Date, r.ID)
	return nil
}

func leaveDelete(cmd *cobra.Command, id string) error {
	deleted, err := newClient().DeleteLeave(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("error deleting leave: %w", err)
	}
	cmd.Printf("Deleted leave request %s\n", deleted)
	return nil
}

func printRequests(cmd *cobra.Command, rs []leave.Request) {
	if len(rs) == 0 {
		cmd.Println("No leave requests.")
		return
	}
	for _, r := range rs {
		line := fmt.Sprintf("%s  %-12s %s", r.Date, r.EmployeeName, r.Entry.Type().Label())
		if text, ok := r.Entry.Comment(); ok {
			line += ": " + text
		}
		cmd.Printf("%s %s\n", line, mutedStyle.Render(r.ID))
	}
}

func init() {
	leaveListCmd.Flags().StringVar(&leaveMonth, "month", "", "only show YYYY-MM")
	leaveRecentCmd.Flags().IntVar(&leaveLimit, "limit", 0, "maximum number of requests (default from server config)")

	leaveCmd.AddCommand(leaveListCmd, leaveRecentCmd, leaveAddCmd, leaveDeleteCmd, leaveTypesCmd)
	rootCmd.AddCommand(leaveCmd)
}
