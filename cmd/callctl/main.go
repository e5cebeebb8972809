package main

import (
	"fmt"
	"log/slog"
	"os"

	"voice-call-dashboard/internal/config"
	"voice-call-dashboard/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	cfg config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "callctl",
	Short:        "Operator tooling for the call dashboard",
	Long:         "Applies the schema and works with stored calls from the command line.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		// stdout carries command output; logs go to stderr.
		log = logger.NewWriter(os.Stderr, cfg.App.Env)
		slog.SetDefault(log)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
