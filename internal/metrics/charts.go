package metrics

import (
	"time"

	"voice-call-dashboard/internal/calls"
)

// DefaultChartDays is the calls-per-day window.
const DefaultChartDays = 14

// CallsPerDay counts calls by UTC start date over the days ending on now's date, oldest first.
func CallsPerDay(records []calls.CallRecord, now time.Time, days int) []DayCount {
	if days <= 0 {
		days = DefaultChartDays
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(days - 1))

	out := make([]DayCount, days)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i).Format("Jan 2")
	}
	for _, r := range records {
		if r.CallStart.IsZero() {
			continue
		}
		s := r.CallStart.UTC()
		day := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
		idx := int(day.Sub(first).Hours() / 24)
		if day.Before(first) || idx >= days {
			continue
		}
		out[idx].Calls++
	}
	return out
}

// DurationBuckets splits calls into under one minute, one to three minutes, and longer.
func DurationBuckets(records []calls.CallRecord) []Bucket {
	var short, medium, long int
	for _, r := range records {
		minutes := float64(r.Duration) / 60
		switch {
		case minutes < 1:
			short++
		case minutes <= 3:
			medium++
		default:
			long++
		}
	}
	return []Bucket{
		{Name: "< 1 min", Value: short, Color: "#06B6D4"},
		{Name: "1-3 min", Value: medium, Color: "#8B5CF6"},
		{Name: "> 3 min", Value: long, Color: "#F59E0B"},
	}
}
