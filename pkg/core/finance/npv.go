package finance

import (
	"math"
)

// =============================================================================
// NET PRESENT VALUE
// =============================================================================

// NPVResult holds the discounted series and its net value.
type NPVResult struct {
	NPV            float64   `json:"npv"`
	PresentValue   float64   `json:"present_value"` // sum of discounted flows
	Discounted     []float64 `json:"discounted"`    // per-period discounted flows
	Interpretation string    `json:"interpretation"`
}

// NPV discounts each period flow and nets the initial investment.
//
// FORMULA: NPV = Σ [ CF_i / (1 + r)^i ] - I_0,  i starting at 1
func NPV(series CashFlowSeries) (NPVResult, error) {
	if err := series.validate(); err != nil {
		return NPVResult{}, err
	}

	discounted := make([]float64, len(series.Flows))
	var pv float64
	for i, flow := range series.Flows {
		d := flow / math.Pow(1+series.DiscountRate, float64(i+1))
		discounted[i] = d
		pv += d
	}

	npv := pv - series.InitialInvestment
	return NPVResult{
		NPV:            npv,
		PresentValue:   pv,
		Discounted:     discounted,
		Interpretation: interpret(npv),
	}, nil
}
