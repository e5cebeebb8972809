// Package export writes stored calls to spreadsheet files for offline review.
package export

import (
	"fmt"
	"io"
	"time"

	"voice-call-dashboard/internal/calls"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Calls"

var header = []any{
	"ID", "Caller Name", "Phone", "Call Start", "Call End", "Duration (s)", "Cost",
	"Success", "Client Status", "Lead Quality", "Property Interest", "Follow Up Date",
	"Summary", "Agent Notes", "Provider Call ID",
}

// WriteCalls renders records as a single-sheet workbook, one row per call in the given order.
func WriteCalls(w io.Writer, records []calls.CallRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("export: freeze header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.ID, r.CallerName, r.Phone, formatTime(&r.CallStart), formatTime(&r.CallEnd),
			r.Duration, r.Cost, successLabel(r.SuccessFlag), string(r.ClientStatus),
			string(r.LeadQuality), r.PropertyInterest, formatTime(r.FollowUpDate),
			r.Summary, r.AgentNotes, r.ProviderCallID,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("export: row %s: %w", r.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func successLabel(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return "yes"
	default:
		return "no"
	}
}
