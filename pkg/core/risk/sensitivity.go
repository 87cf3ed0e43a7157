package risk

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"project_economics/pkg/core/calcerr"
	"project_economics/pkg/core/finance"
)

// =============================================================================
// SENSITIVITY ANALYSIS
// One-at-a-time: each variable sweeps its range while every other
// base-scenario input stays fixed. The coefficient is the regression
// slope of NPV against percent change from the base value, so variables
// rank comparably regardless of their units.
// =============================================================================

// Scenario variables addressable by a sweep.
const (
	VarInitialInvestment = "initial_investment"
	VarDiscountRate      = "discount_rate"
	VarCashFlowScale     = "cash_flow_scale" // multiplier on every period flow, base 1.0
)

// Range is an inclusive sweep of Steps evenly spaced values.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Steps int     `json:"steps"`
}

// SamplePoint is one evaluated sweep position.
type SamplePoint struct {
	Value         float64 `json:"value"`
	PercentChange float64 `json:"percent_change"`
	NPV           float64 `json:"npv"`
}

// VariableSensitivity is the per-variable outcome.
type VariableSensitivity struct {
	Name        string        `json:"name"`
	Coefficient float64       `json:"coefficient"`
	Points      []SamplePoint `json:"points"`
}

// SensitivityResult ranks the variables by impact.
type SensitivityResult struct {
	BaseNPV   float64               `json:"base_npv"`
	Variables []VariableSensitivity `json:"variables"` // sorted by |coefficient| descending
}

// Sensitivity sweeps each named variable over its range and ranks the
// variables by the magnitude of their NPV impact.
func Sensitivity(base finance.CashFlowSeries, ranges map[string]Range) (*SensitivityResult, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: sensitivity analysis needs at least one variable range", calcerr.ErrInvalidInput)
	}

	baseNPV, err := finance.NPV(base)
	if err != nil {
		return nil, err
	}

	result := &SensitivityResult{BaseNPV: baseNPV.NPV}
	for name, r := range ranges {
		if r.Steps < 2 {
			return nil, fmt.Errorf("%w: variable %q needs at least 2 steps, got %d", calcerr.ErrInvalidInput, name, r.Steps)
		}
		if r.Min > r.Max {
			return nil, fmt.Errorf("%w: variable %q has min > max", calcerr.ErrInvalidInput, name)
		}

		baseValue, apply, err := scenarioVariable(base, name)
		if err != nil {
			return nil, err
		}
		if baseValue == 0 {
			return nil, fmt.Errorf("%w: variable %q has base value zero, percent change undefined", calcerr.ErrDegenerateInput, name)
		}

		points := make([]SamplePoint, r.Steps)
		pcts := make([]float64, r.Steps)
		npvs := make([]float64, r.Steps)
		for k := 0; k < r.Steps; k++ {
			value := r.Min + (r.Max-r.Min)*float64(k)/float64(r.Steps-1)
			modified := apply(value)
			npv, err := finance.NPV(modified)
			if err != nil {
				return nil, err
			}
			pct := (value - baseValue) / baseValue * 100
			points[k] = SamplePoint{Value: value, PercentChange: pct, NPV: npv.NPV}
			pcts[k] = pct
			npvs[k] = npv.NPV
		}

		_, slope := stat.LinearRegression(pcts, npvs, nil, false)
		result.Variables = append(result.Variables, VariableSensitivity{
			Name:        name,
			Coefficient: slope,
			Points:      points,
		})
	}

	sort.Slice(result.Variables, func(i, j int) bool {
		a, b := result.Variables[i], result.Variables[j]
		if absOf(a.Coefficient) != absOf(b.Coefficient) {
			return absOf(a.Coefficient) > absOf(b.Coefficient)
		}
		return a.Name < b.Name // stable order for equal impact
	})
	return result, nil
}

// scenarioVariable resolves a variable name to its base value and a
// function producing the modified scenario.
func scenarioVariable(base finance.CashFlowSeries, name string) (float64, func(float64) finance.CashFlowSeries, error) {
	switch name {
	case VarInitialInvestment:
		return base.InitialInvestment, func(v float64) finance.CashFlowSeries {
			s := base
			s.InitialInvestment = v
			return s
		}, nil
	case VarDiscountRate:
		return base.DiscountRate, func(v float64) finance.CashFlowSeries {
			s := base
			s.DiscountRate = v
			return s
		}, nil
	case VarCashFlowScale:
		return 1.0, func(v float64) finance.CashFlowSeries {
			s := base
			s.Flows = make([]float64, len(base.Flows))
			for i, f := range base.Flows {
				s.Flows[i] = f * v
			}
			return s
		}, nil
	}
	return 0, nil, fmt.Errorf("%w: unknown scenario variable %q", calcerr.ErrInvalidInput, name)
}

func absOf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
