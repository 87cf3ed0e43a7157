package estimate

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// EXPERT JUDGMENT (Delphi-style aggregation)
// =============================================================================

// ExpertResult aggregates a panel of independent estimates.
type ExpertResult struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"` // population standard deviation
	FilteredMean float64 `json:"filtered_mean"`
	Outliers     int     `json:"outliers"`
	PERTEstimate float64 `json:"pert_estimate"`
	ConfidenceLo float64 `json:"confidence_lo"`
	ConfidenceHi float64 `json:"confidence_hi"`
}

// ExpertJudgment combines independent numeric estimates.
//
// Outlier policy: estimates further than 2 standard deviations from the
// mean are dropped and the mean recomputed. If everything is dropped the
// unfiltered mean is kept — a deliberate fallback, not data loss.
//
// FORMULA: PERT = (optimistic + 4*mostLikely + pessimistic) / 6
// with optimistic/pessimistic the sample min/max and mostLikely the median.
func ExpertJudgment(estimates []float64) (ExpertResult, error) {
	if len(estimates) == 0 {
		return ExpertResult{}, fmt.Errorf("%w: no estimates given", calcerr.ErrInvalidInput)
	}

	sorted := append([]float64(nil), estimates...)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	stdDev := stat.PopStdDev(sorted, nil)
	median := medianSorted(sorted)

	// 2-sigma outlier filter.
	var filtered []float64
	for _, x := range sorted {
		if abs(x-mean) <= 2*stdDev {
			filtered = append(filtered, x)
		}
	}
	filteredMean := mean
	if len(filtered) > 0 {
		filteredMean = stat.Mean(filtered, nil)
	}

	optimistic := sorted[0]
	pessimistic := sorted[len(sorted)-1]
	pert := (optimistic + 4*median + pessimistic) / 6

	return ExpertResult{
		Mean:         mean,
		Median:       median,
		StdDev:       stdDev,
		FilteredMean: filteredMean,
		Outliers:     len(sorted) - len(filtered),
		PERTEstimate: pert,
		ConfidenceLo: mean - 1.96*stdDev,
		ConfidenceHi: mean + 1.96*stdDev,
	}, nil
}

// medianSorted returns the median of an already-sorted slice.
func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
