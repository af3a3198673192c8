package cmd

import (
	"github.com/spf13/cobra"
)

var inspireCmd = &cobra.Command{
	Use:   "inspire",
	Short: "Fetch motivational text from the language model",
}

var inspireQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print a short motivational quote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := newClient().Quote(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println(text)
		return nil
	},
}

var inspireReflectionCmd = &cobra.Command{
	Use:   "reflection",
	Short: "Print a question to reflect on your day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := newClient().Reflection(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println(text)
		return nil
	},
}

var inspireIdeasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Suggest three habits to try",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ideas, err := newClient().Ideas(cmd.Context())
		if err != nil {
			return err
		}
		for _, idea := range ideas {
			cmd.Printf("- %s\n", idea.Name)
		}
		return nil
	},
}

func init() {
	inspireCmd.AddCommand(inspireQuoteCmd, inspireReflectionCmd, inspireIdeasCmd)
	rootCmd.AddCommand(inspireCmd)
}
