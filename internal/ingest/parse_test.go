package ingest

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"voice-call-dashboard/internal/calls"
)

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		raw  string
		want time.Time
	}{
		{``, now},
		{`null`, now},
		{`""`, now},
		{`"2025-05-01T10:00:00Z"`, want},
		{`"2025-05-01T15:30:00+05:30"`, want},
		{`"2025-05-01T10:00:00.000Z"`, want},
		{`"2025-05-01 10:00:00"`, want},
		{`"2025-05-01T10:00:00"`, want},
		{`1746093600000`, want},
		{`"2025-05-01T15:30:00+0530"`, want},
		{`"2025-05-01T15:30:00.000+0530"`, want},
	}
	for _, tc := range cases {
		got, err := parseTimestamp(json.RawMessage(tc.raw), now)
		if err != nil {
			t.Fatalf("%s: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Fatalf("%s: got %v, want %v", tc.raw, got, tc.want)
		}
	}

	for _, bad := range []string{
		`"yesterday"`, `"2025-13-45"`, `true`,
		`1e300`, `-1e300`, `9e18`, `8640000000000001`, `"0000-01-01T00:00:00+01:00"`,
	} {
		if _, err := parseTimestamp(json.RawMessage(bad), now); !errors.Is(err, ErrInvalidTimestamp) {
			t.Fatalf("%s: expected ErrInvalidTimestamp, got %v", bad, err)
		}
	}
}

func TestDurationSeconds(t *testing.T) {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	if got := durationSeconds(start, start.Add(90*time.Second+900*time.Millisecond)); got != 90 {
		t.Fatalf("expected floor to 90, got %d", got)
	}
	if got := durationSeconds(start, start.Add(-time.Minute)); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestBilledSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"180s", 180, true},
		{"42.5s", 42, true},
		{"0s", 0, false},
		{"", 0, false},
		{"180", 0, false},
	}
	for _, tc := range cases {
		got, ok := billedSeconds(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%q: got (%d,%v), want (%d,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{`1.25`, 1.25},
		{`"1.25"`, 1.25},
		{`"  2.5 INR"`, 2.5},
		{`"abc"`, 0},
		{`null`, 0},
		{``, 0},
		{`true`, 0},
		{`-3`, -3},
	}
	for _, tc := range cases {
		if got := parseAmount(json.RawMessage(tc.raw)); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := truncate("₹₹₹₹", 2); got != "₹₹" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestCallerNameAndPropertyInterest(t *testing.T) {
	named := Event{CallerName: "Asha", SystemPrompt: "regarding their new project called X."}
	if got := callerName(named); got != "Asha" {
		t.Fatalf("explicit name must win, got %q", got)
	}
	if got := callerName(Event{SystemPrompt: "generic prompt"}); got != "Real Estate Prospect" {
		t.Fatalf("got %q", got)
	}
	if got := callerName(Event{}); got != calls.DefaultCallerName {
		t.Fatalf("got %q", got)
	}

	ev := Event{SystemPrompt: "Pitch PRESTIGE MIRA ROAD and Kalpataru Srishti"}
	if got := propertyInterest(ev); got != "PRESTIGE MIRA ROAD, Kalpataru Srishti" {
		t.Fatalf("got %q", got)
	}
	ev.PropertyInterest = "Villa"
	if got := propertyInterest(ev); got != "Villa" {
		t.Fatalf("supplied value must win, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	existing := []calls.CallRecord{{ID: "c1", CallerName: "Asha"}}
	newID := func() string { return "fresh" }

	if got := Resolve("c1", "Asha", existing, newID); got != "c1" {
		t.Fatalf("same caller keeps id, got %q", got)
	}
	if got := Resolve("c1", "Ravi", existing, newID); got != "fresh" {
		t.Fatalf("different caller gets fresh id, got %q", got)
	}
	if got := Resolve("c2", "Ravi", existing, newID); got != "c2" {
		t.Fatalf("unknown id is kept, got %q", got)
	}
	if got := Resolve("c1", "Ravi", existing, func() string { return "c1" }); got == "c1" {
		t.Fatalf("fresh id must differ from the candidate")
	}
}

func TestResolve_MintedIDAvoidsSnapshot(t *testing.T) {
	existing := []calls.CallRecord{
		{ID: "c1", CallerName: "Asha"},
		{ID: "fresh", CallerName: "Meera"},
		{ID: "c1_r1", CallerName: "Ravi"},
	}
	ids := []string{"fresh", "next"}
	i := 0
	newID := func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	if got := Resolve("c1", "Ravi", existing, newID); got != "next" {
		t.Fatalf("expected the first id not in the snapshot, got %q", got)
	}

	stuck := func() string { return "fresh" }
	if got := Resolve("c1", "Kiran", existing, stuck); got != "c1_r2" {
		t.Fatalf("expected derived id skipping taken suffixes, got %q", got)
	}
}

func TestNewCallIDFormat(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	if got := callIDAt(at, 7); got != "call_1700000000123_7" {
		t.Fatalf("got %q", got)
	}
}
