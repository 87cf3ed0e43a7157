// Package compare aggregates results from the estimation, finance, and
// risk packages into summary statistics. It depends only on their output
// records, never their internals.
package compare

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"project_economics/pkg/core/calcerr"
	"project_economics/pkg/core/estimate"
	"project_economics/pkg/core/finance"
	"project_economics/pkg/core/risk"
)

// Summary is the aggregate over one numeric series.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Spread float64 `json:"spread"` // max - min
}

// Summarize aggregates a non-empty value series. A single value is its
// own mean and median with zero spread.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("%w: nothing to summarize", calcerr.ErrInvalidInput)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Mean:   stat.Mean(sorted, nil),
		Median: median,
		StdDev: stat.PopStdDev(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[n-1],
		Spread: sorted[n-1] - sorted[0],
	}, nil
}

// =============================================================================
// PER-FAMILY EXTRACTORS
// Each pulls the headline numeric field from one result type so any of
// the three components' outputs can feed Summarize.
// =============================================================================

// Efforts compares parametric estimates by effort in person-months.
func Efforts(results []estimate.CocomoResult) (Summary, error) {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.EffortPersonMonths
	}
	return Summarize(values)
}

// Costs compares function-point estimates by total cost.
func Costs(results []estimate.FunctionPointResult) (Summary, error) {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.Cost
	}
	return Summarize(values)
}

// NetPresentValues compares financial scenarios by NPV.
func NetPresentValues(results []finance.NPVResult) (Summary, error) {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.NPV
	}
	return Summarize(values)
}

// SimulationMeans compares Monte Carlo runs by mean outcome.
func SimulationMeans(results []risk.SimulationResult) (Summary, error) {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.Mean
	}
	return Summarize(values)
}
