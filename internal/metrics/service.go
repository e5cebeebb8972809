package metrics

import (
	"context"
	"math"
	"time"

	"voice-call-dashboard/internal/calls"
	"voice-call-dashboard/internal/classify"
	"voice-call-dashboard/internal/pricing"

	"github.com/shopspring/decimal"
)

// DefaultInitialBalance is the prepaid balance the dashboard starts from, in rupees.
var DefaultInitialBalance = decimal.NewFromInt(15000)

// Aggregator derives dashboard figures from stored calls. It has no side effects.
type Aggregator struct {
	InitialBalance decimal.Decimal
}

func NewAggregator(initialBalance float64) Aggregator {
	if initialBalance <= 0 || math.IsNaN(initialBalance) || math.IsInf(initialBalance, 0) {
		return Aggregator{InitialBalance: DefaultInitialBalance}
	}
	return Aggregator{InitialBalance: decimal.NewFromFloat(initialBalance)}
}

// Summarize computes the headline block. Records without an id are ignored.
func (a Aggregator) Summarize(records []calls.CallRecord, now time.Time) Summary {
	out := Summary{LastRefreshed: now.UTC()}

	var (
		successful    int
		totalDuration int
		costs         []float64
	)
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		out.TotalCalls++
		if r.SuccessFlag != nil && *r.SuccessFlag {
			successful++
		}
		if r.Duration > 0 {
			totalDuration += r.Duration
		}
		costs = append(costs, r.Cost)

		in := classify.Input{SuccessFlag: r.SuccessFlag, Summary: r.Summary, Transcript: r.Transcript}
		if r.ClientStatus == calls.ClientStatusInterested || classify.ClientStatus(in) == calls.ClientStatusInterested {
			out.InterestedLeads++
		}
		if classify.MentionsAppointment(r.Summary, r.Transcript) {
			out.AppointmentsScheduled++
		}
		if classify.MentionsCallback(r.Summary, r.Transcript) {
			out.CallbacksRequested++
		}
		if r.LeadQuality == calls.LeadQualityHot || classify.LeadQuality(in) == calls.LeadQualityHot {
			out.HotLeads++
		}
	}

	total := pricing.Sum(costs...)
	out.TotalCost, _ = total.Round(4).Float64()

	initial := a.InitialBalance
	if initial.Sign() <= 0 {
		initial = DefaultInitialBalance
	}
	remaining := decimal.Max(decimal.Zero, initial.Sub(total).Round(2))
	out.RemainingBalance, _ = remaining.Float64()
	out.TotalBalance = FormatINR(out.RemainingBalance)

	out.SuccessRate = FormatPercent(successful, out.TotalCalls)
	if out.TotalCalls == 0 {
		out.AvgCallDuration = FormatDuration(0)
		out.AvgCallCost = FormatINR(0)
		return out
	}
	avgSec := int(math.Round(float64(totalDuration) / float64(out.TotalCalls)))
	out.AvgCallDuration = FormatDuration(avgSec)
	avgCost, _ := total.Div(decimal.NewFromInt(int64(out.TotalCalls))).Round(2).Float64()
	out.AvgCallCost = FormatINR(avgCost)
	return out
}

// Service reads stored calls and builds the dashboard.
type Service struct {
	store calls.Store
	agg   Aggregator
	clock func() time.Time
}

func NewService(store calls.Store, agg Aggregator) *Service {
	return &Service{store: store, agg: agg, clock: time.Now}
}

// Dashboard never fails: a backend error yields the figures for zero calls, and the
// returned ReadResult reports the degradation.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, calls.ReadResult[calls.CallRecord]) {
	res := calls.ReadCalls(ctx, s.store)
	now := s.clock()
	return Dashboard{
		Summary:         s.agg.Summarize(res.Items, now),
		CallsPerDay:     CallsPerDay(res.Items, now, DefaultChartDays),
		DurationBuckets: DurationBuckets(res.Items),
	}, res
}
