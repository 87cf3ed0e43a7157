package finance

import (
	"fmt"
	"math"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// INTERNAL RATE OF RETURN
// Newton-Raphson with a single pragmatic reseed. Non-convergence is
// returned as data (residual + flag), never as an error: a close-enough
// rate is usually still actionable, and the caller can judge via the
// residual. Pathological sign patterns can have multiple or no real
// roots; no bracketing fallback is attempted.
// =============================================================================

const (
	irrSeed      = 0.10
	irrReseed    = 0.05
	irrTolerance = 1e-4
	irrMaxIter   = 100
)

// IRRResult holds the root-finder outcome and its trustworthiness data.
type IRRResult struct {
	Rate        float64 `json:"rate"`         // decimal, e.g. 0.12 for 12%
	RatePercent float64 `json:"rate_percent"`
	ResidualNPV float64 `json:"residual_npv"` // NPV at the returned rate
	Iterations  int     `json:"iterations"`
	Converged   bool    `json:"converged"`
}

// IRR finds the discount rate at which the series' NPV is zero.
func IRR(series CashFlowSeries) (IRRResult, error) {
	if len(series.Flows) == 0 {
		return IRRResult{}, fmt.Errorf("%w: cash flow series needs at least one period flow", calcerr.ErrInvalidInput)
	}
	if series.InitialInvestment <= 0 {
		return IRRResult{}, fmt.Errorf("%w: initial investment must be positive for IRR, got %v", calcerr.ErrInvalidInput, series.InitialInvestment)
	}

	rate := irrSeed
	reseeded := false
	var f float64
	iterations := 0

	for ; iterations < irrMaxIter; iterations++ {
		f = npvAt(series, rate)
		if math.Abs(f) < irrTolerance {
			return IRRResult{
				Rate:        rate,
				RatePercent: rate * 100,
				ResidualNPV: f,
				Iterations:  iterations,
				Converged:   true,
			}, nil
		}

		d := npvDerivativeAt(series, rate)
		if math.Abs(d) < irrTolerance {
			if reseeded {
				break
			}
			rate = irrReseed
			reseeded = true
			continue
		}

		next := rate - f/d
		if next <= -1 {
			// Discount factor would blow up; clamp just above the pole.
			next = -0.999
		}
		rate = next
	}

	return IRRResult{
		Rate:        rate,
		RatePercent: rate * 100,
		ResidualNPV: npvAt(series, rate),
		Iterations:  iterations,
		Converged:   false,
	}, nil
}

// npvAt evaluates NPV at an arbitrary rate, ignoring the series' own
// discount rate.
func npvAt(series CashFlowSeries, rate float64) float64 {
	npv := -series.InitialInvestment
	for i, flow := range series.Flows {
		npv += flow / math.Pow(1+rate, float64(i+1))
	}
	return npv
}

// npvDerivativeAt is d(NPV)/d(rate).
func npvDerivativeAt(series CashFlowSeries, rate float64) float64 {
	var d float64
	for i, flow := range series.Flows {
		t := float64(i + 1)
		d -= t * flow / math.Pow(1+rate, t+1)
	}
	return d
}
