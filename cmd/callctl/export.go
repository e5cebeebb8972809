package main

import (
	"fmt"
	"os"

	"voice-call-dashboard/internal/calls"
	"voice-call-dashboard/internal/export"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored call to an .xlsx file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		backend, err := calls.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		records, err := backend.Calls.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list calls: %w", err)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := export.WriteCalls(f, records); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", exportOut, err)
		}

		log.Info("calls exported", "file", exportOut, "rows", len(records))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "calls.xlsx", "output file")
	rootCmd.AddCommand(exportCmd)
}
