// Verification runner for the computation core: recomputes the known
// fixed-point cases and prints expected vs actual, so model regressions
// are visible without digging through test output.
package main

import (
	"fmt"
	"math"
	"os"

	"project_economics/pkg/core/estimate"
	"project_economics/pkg/core/finance"
	"project_economics/pkg/core/risk"
)

var failures int

func check(name string, got, want, tolerance float64) {
	status := "OK  "
	if math.Abs(got-want) > tolerance {
		status = "FAIL"
		failures++
	}
	fmt.Printf("[%s] %-40s want %-12.4f got %.4f\n", status, name, want, got)
}

func main() {
	fmt.Println("--- Financial Metrics ---")

	npv, err := finance.NPV(finance.CashFlowSeries{Flows: []float64{100}})
	if err != nil {
		fmt.Printf("npv: %v\n", err)
		os.Exit(1)
	}
	check("NPV(0, [100], 0%)", npv.NPV, 100, 0.0001)

	payback, err := finance.Payback(finance.CashFlowSeries{InitialInvestment: 100, Flows: []float64{50, 50, 50}})
	if err != nil {
		fmt.Printf("payback: %v\n", err)
		os.Exit(1)
	}
	check("Payback(100, [50,50,50])", payback.Periods, 2.0, 0.0001)

	// IRR round-trip: NPV at the found rate must be near zero.
	series := finance.CashFlowSeries{InitialInvestment: 1000, Flows: []float64{500, 500, 500}}
	irr, err := finance.IRR(series)
	if err != nil {
		fmt.Printf("irr: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("       IRR converged=%v rate=%.4f%% in %d iterations\n", irr.Converged, irr.RatePercent, irr.Iterations)
	check("NPV at IRR rate", irr.ResidualNPV, 0, 1.0)

	fmt.Println("--- Estimation Models ---")

	reg, err := estimate.Regression([]estimate.DataPoint{{Size: 1, Effort: 10}, {Size: 2, Effort: 20}, {Size: 3, Effort: 30}}, 4)
	if err != nil {
		fmt.Printf("regression: %v\n", err)
		os.Exit(1)
	}
	check("Regression predict at size 4", reg.PredictedEffort, 40, 0.0001)
	check("Regression r-squared", reg.RSquared, 1.0, 0.0001)

	fp, err := estimate.FunctionPoints(estimate.FunctionPointProfile{Complexity: estimate.Average}, estimate.DefaultConfig())
	if err != nil {
		fmt.Printf("function points: %v\n", err)
		os.Exit(1)
	}
	check("FunctionPoints all-zero UFP", fp.UnadjustedFP, 0, 0.0001)
	check("FunctionPoints all-zero cost", fp.Cost, 0, 0.0001)

	fmt.Println("--- Risk Engine ---")

	tree := risk.Tree{
		Root: 0,
		Nodes: []risk.Node{
			{Kind: risk.Decision, Children: []int{1, 2}},
			{Kind: risk.Terminal, Label: "up", Value: 10},
			{Kind: risk.Terminal, Label: "down", Value: -5},
		},
	}
	treeRes, err := risk.EvaluateTree(tree)
	if err != nil {
		fmt.Printf("decision tree: %v\n", err)
		os.Exit(1)
	}
	check("Decision tree max(10, -5)", treeRes.ExpectedValue, 10, 0.0001)

	sim, err := risk.Simulate(risk.SimulationConfig{
		Variables:       map[string]risk.Variable{"x": {Distribution: risk.Normal, Mean: 0, StdDev: 1}},
		Iterations:      10000,
		Formula:         "x",
		ConfidenceLevel: 0.95,
		Seed:            42,
	})
	if err != nil {
		fmt.Printf("monte carlo: %v\n", err)
		os.Exit(1)
	}
	check("Monte Carlo N(0,1) mean", sim.Mean, 0, 0.05)
	check("Monte Carlo N(0,1) stddev", sim.StdDev, 1, 0.05)

	if failures > 0 {
		fmt.Printf("\n%d check(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nall checks passed")
}
