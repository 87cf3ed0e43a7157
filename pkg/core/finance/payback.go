package finance

import (
	"math"
)

// =============================================================================
// PAYBACK PERIOD
// =============================================================================

// PaybackResult reports when the cumulative cash flow recovers the
// initial investment. A series that never recovers is indeterminate,
// not an error: Determinate is false and Periods is zero.
type PaybackResult struct {
	Periods     float64   `json:"periods,omitempty"`
	Determinate bool      `json:"determinate"`
	Cumulative  []float64 `json:"cumulative"`
}

// Payback walks the undiscounted cumulative cash flow and interpolates
// the fractional period at the zero crossing.
func Payback(series CashFlowSeries) (PaybackResult, error) {
	if err := series.validate(); err != nil {
		return PaybackResult{}, err
	}
	return walkPayback(series, false), nil
}

// DiscountedPayback is Payback over flows discounted at the series rate.
func DiscountedPayback(series CashFlowSeries) (PaybackResult, error) {
	if err := series.validate(); err != nil {
		return PaybackResult{}, err
	}
	return walkPayback(series, true), nil
}

func walkPayback(series CashFlowSeries, discount bool) PaybackResult {
	result := PaybackResult{Cumulative: make([]float64, len(series.Flows))}
	cumulative := -series.InitialInvestment

	// A zero outlay is recovered immediately.
	if cumulative >= 0 {
		result.Determinate = true
	}

	for i, flow := range series.Flows {
		if discount {
			flow /= math.Pow(1+series.DiscountRate, float64(i+1))
		}
		prev := cumulative
		cumulative += flow
		result.Cumulative[i] = cumulative

		if !result.Determinate && prev < 0 && cumulative >= 0 {
			// Linear interpolation inside period i+1.
			fraction := -prev / flow
			result.Periods = float64(i) + fraction
			result.Determinate = true
		}
	}
	return result
}
