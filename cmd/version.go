package cmd

import (
	"github.com/brk3/habitcal/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show client and server versions",
	Long: `Prints the client build and, when the API at --api answers, the server
build it is talking to. An unreachable server is reported but is not an error.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version(cmd)
	},
}

func version(cmd *cobra.Command) {
	cmd.Printf("Client Version: %s (built %s)\n", versioninfo.Version, versioninfo.BuildDate)

	v, err := newClient().ServerVersion(cmd.Context())
	if err != nil {
		cmd.Println(mutedStyle.Render("Server unavailable: " + err.Error()))
		return
	}
	cmd.Printf("Server Version: %s (built %s)\n", v.Version, v.BuildDate)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
