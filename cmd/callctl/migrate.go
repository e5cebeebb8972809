package main

import (
	"errors"
	"fmt"

	"voice-call-dashboard/internal/calls"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the calls and Leads schema",
	Long:  "Creates the calls table, its indexes and the Leads table if they do not exist. Safe to re-run.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		backend, err := calls.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		if backend.Migrate == nil {
			return errors.New("migrate requires the postgres backend (set DATABASE_URL)")
		}
		if err := backend.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		log.Info("schema applied", "backend", backend.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
