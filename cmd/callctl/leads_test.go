package main

import (
	"context"
	"strings"
	"testing"

	"voice-call-dashboard/internal/calls"
)

func TestImportLeads(t *testing.T) {
	repo := calls.NewMemoryRepo()
	n, err := importLeads(context.Background(), strings.NewReader(
		`[{"Owner Name": "Ravi", "Mobile No": 9876543210}, {"Owner Name": "Asha"}, {"Mobile No": 9123456780}]`,
	), repo)
	if err != nil {
		t.Fatalf("importLeads: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}

	rows, err := repo.ListLeads(context.Background())
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(rows) != 3 || *rows[0].OwnerName != "Asha" || *rows[1].MobileNo != 9876543210 || rows[2].OwnerName != nil {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestImportLeads_RejectsNonArray(t *testing.T) {
	if _, err := importLeads(context.Background(), strings.NewReader(`{"Owner Name": "Ravi"}`), calls.NewMemoryRepo()); err == nil {
		t.Fatalf("expected decode error")
	}
}
