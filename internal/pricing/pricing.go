package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultPerMinute is the rate used to estimate a call's cost when the provider reports none.
var DefaultPerMinute = decimal.RequireFromString("0.50")

var sixty = decimal.NewFromInt(60)

// Estimator derives call costs from billed seconds.
//
// Contract:
// - Estimates are rounded to 2 decimals; stored costs to 4.
// - Results are never negative and never NaN/Inf.
type Estimator struct {
	PerMinute decimal.Decimal
}

// NewEstimator returns an Estimator for perMinute, falling back to DefaultPerMinute
// for non-positive or non-finite rates.
func NewEstimator(perMinute float64) Estimator {
	if perMinute <= 0 || math.IsNaN(perMinute) || math.IsInf(perMinute, 0) {
		return Estimator{PerMinute: DefaultPerMinute}
	}
	return Estimator{PerMinute: decimal.NewFromFloat(perMinute)}
}

func (e Estimator) rate() decimal.Decimal {
	if e.PerMinute.Sign() <= 0 {
		return DefaultPerMinute
	}
	return e.PerMinute
}

// Estimate returns round(durationSeconds/60 * rate, 2).
func (e Estimator) Estimate(durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	d := decimal.NewFromInt(int64(durationSeconds)).
		Div(sixty).
		Mul(e.rate()).
		Round(2)
	f, _ := d.Float64()
	return f
}

// Resolve picks the cost to store for a call: the provider's figure when it is non-zero,
// otherwise an estimate from duration. The result is normalized.
func (e Estimator) Resolve(provided float64, durationSeconds int) float64 {
	c := provided
	if math.IsNaN(c) || math.IsInf(c, 0) {
		c = 0
	}
	if c == 0 && durationSeconds > 0 {
		c = e.Estimate(durationSeconds)
	}
	return Normalize(c)
}

// Normalize coerces non-finite values to 0, clamps at 0 and rounds to 4 decimals.
func Normalize(cost float64) float64 {
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost <= 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(cost).Round(4).Float64()
	return f
}

// Sum adds normalized costs without float drift.
func Sum(costs ...float64) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(decimal.NewFromFloat(Normalize(c)))
	}
	return total
}
