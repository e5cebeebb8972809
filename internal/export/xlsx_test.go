package export

import (
	"bytes"
	"testing"
	"time"

	"voice-call-dashboard/internal/calls"

	"github.com/xuri/excelize/v2"
)

func TestWriteCalls(t *testing.T) {
	ok := true
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	records := []calls.CallRecord{
		{
			ID:           "c1",
			CallerName:   "Amy",
			CallStart:    start,
			CallEnd:      start.Add(3 * time.Minute),
			Duration:     180,
			Cost:         1.5,
			SuccessFlag:  &ok,
			ClientStatus: calls.ClientStatusInterested,
			LeadQuality:  calls.LeadQualityHot,
		},
		{ID: "c2", CallerName: "Unknown Caller"},
	}

	var buf bytes.Buffer
	if err := WriteCalls(&buf, records); err != nil {
		t.Fatalf("WriteCalls: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][5] != "Duration (s)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	got := rows[1]
	if got[0] != "c1" || got[3] != "2025-05-01T10:00:00Z" || got[5] != "180" || got[6] != "1.5" ||
		got[7] != "yes" || got[8] != "interested" || got[9] != "hot" {
		t.Fatalf("unexpected row: %v", got)
	}
	if rows[2][0] != "c2" || rows[2][3] != "" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestWriteCalls_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCalls(&buf, nil); err != nil {
		t.Fatalf("WriteCalls: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(sheetName)
	if len(rows) != 1 {
		t.Fatalf("expected only the header, got %d rows", len(rows))
	}
}
