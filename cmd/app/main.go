package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"dispatch/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Order dispatch service",
	Long: `dispatch lets delivery agents claim orders and report their progress,
and streams order changes to dashboards and customers over server-sent events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, agentCmd, sessionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("dispatch: %v", err)
	}
}

// getConfigs reads .env when present, then the process environment.
func getConfigs() (cmd.Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cmd.Config{}, err
	}

	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		return cmd.Config{}, err
	}
	if err = config.Validate(); err != nil {
		return cmd.Config{}, err
	}
	return config, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
