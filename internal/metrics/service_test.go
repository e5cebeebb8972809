package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"voice-call-dashboard/internal/calls"
)

func boolp(b bool) *bool { return &b }

var now = time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)

func TestSummarize_Empty(t *testing.T) {
	s := NewAggregator(15000).Summarize(nil, now)
	if s.TotalCalls != 0 || s.SuccessRate != "0%" || s.AvgCallDuration != "0m 0s" || s.AvgCallCost != "₹0.00" {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
	if s.RemainingBalance != 15000 {
		t.Fatalf("remaining = %v", s.RemainingBalance)
	}
}

func TestSummarize_Figures(t *testing.T) {
	records := []calls.CallRecord{
		{ID: "a", SuccessFlag: boolp(true), Duration: 60, Cost: 1.25, Summary: "Wants to schedule a visit", LeadQuality: calls.LeadQualityHot},
		{ID: "b", SuccessFlag: boolp(false), Duration: 120, Cost: 1.25, Transcript: "please arrange a callback"},
		{ID: "c", Duration: 3900, Cost: 0, ClientStatus: calls.ClientStatusInterested},
		{ID: "", Duration: 999, Cost: 100},
	}
	s := NewAggregator(5).Summarize(records, now)

	if s.TotalCalls != 3 {
		t.Fatalf("records without id must be ignored: %d", s.TotalCalls)
	}
	if s.SuccessRate != "33%" {
		t.Fatalf("success rate = %q", s.SuccessRate)
	}
	// (60+120+3900)/3 = 1360s
	if s.AvgCallDuration != "22m 40s" {
		t.Fatalf("avg duration = %q", s.AvgCallDuration)
	}
	if s.TotalCost != 2.5 || s.RemainingBalance != 2.5 || s.TotalBalance != "₹2.50" {
		t.Fatalf("cost=%v remaining=%v balance=%q", s.TotalCost, s.RemainingBalance, s.TotalBalance)
	}
	if s.AvgCallCost != "₹0.83" {
		t.Fatalf("avg cost = %q", s.AvgCallCost)
	}
	if s.AppointmentsScheduled != 1 || s.CallbacksRequested != 1 || s.HotLeads != 1 || s.InterestedLeads != 1 {
		t.Fatalf("counters: %+v", s)
	}
}

func TestSummarize_BalanceFloorsAtZero(t *testing.T) {
	s := NewAggregator(1).Summarize([]calls.CallRecord{{ID: "a", Cost: 7}}, now)
	if s.RemainingBalance != 0 || s.TotalBalance != "₹0.00" {
		t.Fatalf("remaining=%v balance=%q", s.RemainingBalance, s.TotalBalance)
	}
}

func TestNewAggregator_DefaultBalance(t *testing.T) {
	if !NewAggregator(0).InitialBalance.Equal(DefaultInitialBalance) {
		t.Fatalf("expected default balance")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		-1:   "0m 0s",
		0:    "0m 0s",
		59:   "0m 59s",
		150:  "2m 30s",
		3600: "1h 0m 0s",
		3725: "1h 2m 5s",
	}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if FormatPercent(1, 3) != "33%" || FormatPercent(2, 3) != "67%" || FormatPercent(0, 0) != "0%" {
		t.Fatalf("unexpected percentages")
	}
}

func TestCallsPerDay(t *testing.T) {
	records := []calls.CallRecord{
		{ID: "today", CallStart: now.Add(-time.Hour)},
		{ID: "today2", CallStart: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)},
		{ID: "first", CallStart: time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)},
		{ID: "too-old", CallStart: time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC)},
		{ID: "future", CallStart: now.Add(48 * time.Hour)},
	}
	points := CallsPerDay(records, now, 14)
	if len(points) != 14 {
		t.Fatalf("expected 14 points, got %d", len(points))
	}
	if points[0].Date != "Jun 1" || points[13].Date != "Jun 14" {
		t.Fatalf("labels: first=%q last=%q", points[0].Date, points[13].Date)
	}
	if points[0].Calls != 1 || points[13].Calls != 2 {
		t.Fatalf("counts: %+v", points)
	}
	total := 0
	for _, p := range points {
		total += p.Calls
	}
	if total != 3 {
		t.Fatalf("out-of-window calls must be dropped, total=%d", total)
	}
}

func TestDurationBuckets(t *testing.T) {
	records := []calls.CallRecord{{Duration: 0}, {Duration: 59}, {Duration: 60}, {Duration: 180}, {Duration: 181}}
	b := DurationBuckets(records)
	if b[0].Value != 2 || b[1].Value != 2 || b[2].Value != 1 {
		t.Fatalf("buckets: %+v", b)
	}
	if b[0].Name != "< 1 min" || b[2].Color != "#F59E0B" {
		t.Fatalf("labels: %+v", b)
	}
}

func TestService_DashboardDegradesOnReadFailure(t *testing.T) {
	repo := calls.NewMemoryRepo()
	repo.FailReads = errors.New("db down")
	d, res := NewService(repo, NewAggregator(15000)).Dashboard(context.Background())
	if !res.Degraded {
		t.Fatalf("expected degraded read")
	}
	if d.Summary.TotalCalls != 0 || len(d.CallsPerDay) != DefaultChartDays || len(d.DurationBuckets) != 3 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
}
