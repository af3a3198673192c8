package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/brk3/habitcal/internal/apiclient"
	"github.com/brk3/habitcal/internal/config"
	"github.com/brk3/habitcal/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configPath string
	apiBase    string
	employee   string
)

var rootCmd = &cobra.Command{
	Use:   "habitcal",
	Short: "Track daily habits and a shared leave calendar",
	Long: `
	Habitcal tracks daily habits with streaks, keeps a small team leave calendar
	and fetches motivational text from a language model. The "server" command
	hosts the API; every other command talks to it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HABITCAL_CONFIG or config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL, overrides api_base_url")
	rootCmd.PersistentFlags().StringVar(&employee, "employee", "", "your name on the leave calendar (default $HABITCAL_EMPLOYEE)")
}

func setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config file: %w", err)
	}
	if apiBase != "" {
		cfg.APIBaseURL = apiBase
	}

	return logger.Setup(cfg.Log.Level, cfg.Log.Format)
}

func newClient() *apiclient.Client {
	c := apiclient.New(cfg.APIBaseURL)
	c.Employee = employee
	if c.Employee == "" {
		c.Employee = os.Getenv("HABITCAL_EMPLOYEE")
	}
	return c
}
