package pricing

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	e := NewEstimator(0.50)
	cases := []struct {
		sec  int
		want float64
	}{
		{0, 0},
		{-5, 0},
		{60, 0.5},
		{120, 1},
		{90, 0.75},
		{100, 0.83},
	}
	for _, tc := range cases {
		if got := e.Estimate(tc.sec); got != tc.want {
			t.Fatalf("Estimate(%d) = %v, want %v", tc.sec, got, tc.want)
		}
	}
}

func TestNewEstimator_FallsBackToDefault(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		e := NewEstimator(r)
		if !e.PerMinute.Equal(DefaultPerMinute) {
			t.Fatalf("rate %v: expected default, got %s", r, e.PerMinute)
		}
	}
	var zero Estimator
	if got := zero.Estimate(60); got != 0.5 {
		t.Fatalf("zero-value estimator should use default rate, got %v", got)
	}
}

func TestResolve(t *testing.T) {
	e := NewEstimator(0.50)
	if got := e.Resolve(0, 120); got != 1 {
		t.Fatalf("expected estimate 1, got %v", got)
	}
	if got := e.Resolve(0.12345, 120); got != 0.1235 {
		t.Fatalf("expected provided cost rounded to 4dp, got %v", got)
	}
	if got := e.Resolve(-3, 120); got != 0 {
		t.Fatalf("negative cost must clamp to 0, got %v", got)
	}
	if got := e.Resolve(math.NaN(), 60); got != 0.5 {
		t.Fatalf("NaN should be treated as absent, got %v", got)
	}
	if got := e.Resolve(0, 0); got != 0 {
		t.Fatalf("zero duration gives zero cost, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	if Normalize(math.Inf(-1)) != 0 || Normalize(-0.01) != 0 {
		t.Fatalf("expected clamp to 0")
	}
	if got := Normalize(1.23456); got != 1.2346 {
		t.Fatalf("got %v", got)
	}
}

func TestSum(t *testing.T) {
	got := Sum(0.1, 0.2, -5)
	if got.String() != "0.3" {
		t.Fatalf("Sum = %s, want 0.3", got)
	}
}
