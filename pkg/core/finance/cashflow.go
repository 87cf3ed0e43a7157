// Package finance provides time-value-of-money metrics over cash-flow
// series: ROI, NPV, IRR, payback periods, and a composed analysis with a
// heuristic recommendation score.
package finance

import (
	"fmt"

	"project_economics/pkg/core/calcerr"
)

// Interpretation labels used across the result records.
const (
	Profitable = "Profitable"
	Loss       = "Loss"
	BreakEven  = "Break-even"
)

// CashFlowSeries describes an investment followed by period flows.
// Flows[i] is the flow of period i+1 after time zero; ordering matters.
type CashFlowSeries struct {
	InitialInvestment float64   `json:"initial_investment"`
	Flows             []float64 `json:"flows"`
	DiscountRate      float64   `json:"discount_rate"`
}

func (s CashFlowSeries) validate() error {
	if len(s.Flows) == 0 {
		return fmt.Errorf("%w: cash flow series needs at least one period flow", calcerr.ErrInvalidInput)
	}
	if s.InitialInvestment < 0 {
		return fmt.Errorf("%w: initial investment must be >= 0, got %v", calcerr.ErrInvalidInput, s.InitialInvestment)
	}
	if s.DiscountRate < 0 {
		return fmt.Errorf("%w: discount rate must be >= 0, got %v", calcerr.ErrInvalidInput, s.DiscountRate)
	}
	return nil
}

func interpret(value float64) string {
	switch {
	case value > 1e-9:
		return Profitable
	case value < -1e-9:
		return Loss
	default:
		return BreakEven
	}
}
