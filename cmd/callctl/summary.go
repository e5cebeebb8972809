package main

import (
	"encoding/json"
	"fmt"

	"voice-call-dashboard/internal/calls"
	"voice-call-dashboard/internal/metrics"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print dashboard metrics as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		backend, err := calls.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		svc := metrics.NewService(backend.Calls, metrics.NewAggregator(cfg.Dashboard.InitialBalance))
		d, res := svc.Dashboard(ctx)
		if res.Degraded {
			return fmt.Errorf("read calls: %w", res.Err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
