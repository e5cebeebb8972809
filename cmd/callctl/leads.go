package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"voice-call-dashboard/internal/calls"

	"github.com/spf13/cobra"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Manage the Leads table",
}

var leadsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Append contact rows from a JSON array",
	Long:  `Reads [{"Owner Name": "...", "Mobile No": 9876543210}, ...] and appends every row to the configured store.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open leads: %w", err)
		}
		defer f.Close()

		backend, err := calls.OpenBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		n, err := importLeads(ctx, f, backend.LeadsOut)
		if err != nil {
			return err
		}
		log.Info("leads imported", "backend", backend.Name, "rows", n)
		return nil
	},
}

// importLeads decodes a JSON array of leads from r and appends each one to w.
// It stops at the first failing row and reports how many were written.
func importLeads(ctx context.Context, r io.Reader, w calls.LeadWriter) (int, error) {
	var rows []calls.Lead
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode leads: %w", err)
	}
	for i, l := range rows {
		if err := w.AddLead(ctx, l); err != nil {
			return i, fmt.Errorf("lead %d: %w", i, err)
		}
	}
	return len(rows), nil
}

func init() {
	leadsCmd.AddCommand(leadsImportCmd)
	rootCmd.AddCommand(leadsCmd)
}
