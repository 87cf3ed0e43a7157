package finance

import (
	"errors"
	"math"
	"testing"

	"project_economics/pkg/core/calcerr"
)

// The IRR correctness law: NPV evaluated at the returned rate must be
// near zero.
func TestIRRRoundTrip(t *testing.T) {
	cases := []CashFlowSeries{
		{InitialInvestment: 1000, Flows: []float64{500, 500, 500}},
		{InitialInvestment: 1000, Flows: []float64{200, 300, 400, 500}},
		{InitialInvestment: 5000, Flows: []float64{1500, 1500, 1500, 1500, 1500}},
		{InitialInvestment: 100, Flows: []float64{110}},
	}
	for i, series := range cases {
		res, err := IRR(series)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if !res.Converged {
			t.Fatalf("case %d: did not converge (residual %f)", i, res.ResidualNPV)
		}
		if math.Abs(res.ResidualNPV) > 1.0 {
			t.Errorf("case %d: residual NPV too large: %f at rate %f", i, res.ResidualNPV, res.Rate)
		}
	}
}

func TestIRRSingleFlowExact(t *testing.T) {
	// 100 -> 110 after one period is exactly 10%.
	res, err := IRR(CashFlowSeries{InitialInvestment: 100, Flows: []float64{110}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Rate-0.10) > 0.001 {
		t.Errorf("IRR: want 0.10, got %f", res.Rate)
	}
}

func TestIRRNonConvergenceIsData(t *testing.T) {
	// All-negative flows have no root; the result must still come back
	// with Converged false and a residual, not an error.
	res, err := IRR(CashFlowSeries{InitialInvestment: 1000, Flows: []float64{-100, -100, -100}})
	if err != nil {
		t.Fatalf("non-convergence should not be an error, got %v", err)
	}
	if res.Converged {
		t.Errorf("rootless series reported as converged at rate %f", res.Rate)
	}
	if res.ResidualNPV == 0 {
		t.Errorf("expected a nonzero residual for a rootless series")
	}
}

func TestIRRInvalidInput(t *testing.T) {
	if _, err := IRR(CashFlowSeries{InitialInvestment: 1000}); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("empty flows: want ErrInvalidInput, got %v", err)
	}
	if _, err := IRR(CashFlowSeries{InitialInvestment: 0, Flows: []float64{100}}); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("zero investment: want ErrInvalidInput, got %v", err)
	}
}
