package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// LINEAR REGRESSION MODEL
// Ordinary least squares over historical (size, effort) pairs.
// =============================================================================

// DataPoint is one historical observation.
type DataPoint struct {
	Size   float64 `json:"size"`
	Effort float64 `json:"effort"`
}

// RegressionResult holds the fitted line and the prediction for the target.
type RegressionResult struct {
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
	PredictedEffort float64 `json:"predicted_effort"`
	Correlation     float64 `json:"correlation"` // Pearson r
	RSquared        float64 `json:"r_squared"`
	StandardError   float64 `json:"standard_error"`
	ConfidenceLo    float64 `json:"confidence_lo"`
	ConfidenceHi    float64 `json:"confidence_hi"`
}

// Regression fits effort = intercept + slope*size by ordinary least
// squares and predicts effort at targetSize.
//
// The 95% confidence band is predicted +/- 1.96 * standardError, with
// standardError = sqrt(RSS / (n-2)). Two points fit exactly, so their
// standard error is zero.
func Regression(history []DataPoint, targetSize float64) (RegressionResult, error) {
	n := len(history)
	if n < 2 {
		return RegressionResult{}, fmt.Errorf("%w: regression needs at least 2 historical points, got %d", calcerr.ErrInvalidInput, n)
	}

	sizes := make([]float64, n)
	efforts := make([]float64, n)
	for i, p := range history {
		sizes[i] = p.Size
		efforts[i] = p.Effort
	}

	if stat.Variance(sizes, nil) == 0 {
		return RegressionResult{}, fmt.Errorf("%w: size values have zero variance", calcerr.ErrDegenerateInput)
	}

	intercept, slope := stat.LinearRegression(sizes, efforts, nil, false)

	// Constant effort series: the flat fit is exact and Pearson r is
	// undefined, so report a perfect fit with zero correlation.
	correlation := 0.0
	rSquared := 1.0
	if stat.Variance(efforts, nil) != 0 {
		correlation = stat.Correlation(sizes, efforts, nil)
		rSquared = correlation * correlation
	}

	var rss float64
	for i := range sizes {
		resid := efforts[i] - (intercept + slope*sizes[i])
		rss += resid * resid
	}
	stdErr := 0.0
	if n > 2 {
		stdErr = math.Sqrt(rss / float64(n-2))
	}

	predicted := intercept + slope*targetSize

	return RegressionResult{
		Slope:           slope,
		Intercept:       intercept,
		PredictedEffort: predicted,
		Correlation:     correlation,
		RSquared:        rSquared,
		StandardError:   stdErr,
		ConfidenceLo:    predicted - 1.96*stdErr,
		ConfidenceHi:    predicted + 1.96*stdErr,
	}, nil
}
