package metrics

import "time"

// Summary is the dashboard headline block.
type Summary struct {
	TotalCalls      int    `json:"totalCalls"`
	AvgCallDuration string `json:"avgCallDuration"`
	// TotalBalance is the remaining prepaid balance, formatted as rupees.
	TotalBalance string `json:"totalBalance"`
	AvgCallCost  string `json:"avgCallCost"`
	SuccessRate  string `json:"successRate"`

	InterestedLeads       int `json:"interestedLeads"`
	AppointmentsScheduled int `json:"appointmentsScheduled"`
	CallbacksRequested    int `json:"callbacksRequested"`
	HotLeads              int `json:"hotLeads"`

	TotalCost        float64 `json:"totalCost"`
	RemainingBalance float64 `json:"remainingBalance"`

	LastRefreshed time.Time `json:"lastRefreshed"`
}

// DayCount is one point of the calls-per-day chart.
type DayCount struct {
	Date  string `json:"date"`
	Calls int    `json:"calls"`
}

// Bucket is one slice of the call-duration chart.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Dashboard bundles the summary with the chart series.
type Dashboard struct {
	Summary         Summary    `json:"summary"`
	CallsPerDay     []DayCount `json:"callsPerDay"`
	DurationBuckets []Bucket   `json:"durationBuckets"`
}
