package estimate

import (
	"errors"
	"math"
	"testing"

	"project_economics/pkg/core/calcerr"
)

func TestExpertJudgmentBasics(t *testing.T) {
	res, err := ExpertJudgment([]float64{10, 12, 14, 16, 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Mean-14) > 0.0001 {
		t.Errorf("mean: want 14, got %f", res.Mean)
	}
	if math.Abs(res.Median-14) > 0.0001 {
		t.Errorf("median: want 14, got %f", res.Median)
	}
	// population stddev of {10,12,14,16,18} = sqrt(8)
	if math.Abs(res.StdDev-math.Sqrt(8)) > 0.0001 {
		t.Errorf("stddev: want %f, got %f", math.Sqrt(8), res.StdDev)
	}
	// PERT = (10 + 4*14 + 18) / 6 = 14
	if math.Abs(res.PERTEstimate-14) > 0.0001 {
		t.Errorf("PERT: want 14, got %f", res.PERTEstimate)
	}
	if res.Outliers != 0 {
		t.Errorf("no outliers expected, got %d", res.Outliers)
	}
}

func TestExpertJudgmentOutlierFilter(t *testing.T) {
	// 100 is far outside 2 sigma of the cluster around 10.
	estimates := []float64{9, 10, 10, 11, 10, 9, 11, 10, 100}
	res, err := ExpertJudgment(estimates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outliers != 1 {
		t.Fatalf("want 1 outlier, got %d", res.Outliers)
	}
	// Filtered mean drops the 100 and lands near 10.
	if math.Abs(res.FilteredMean-10) > 0.5 {
		t.Errorf("filtered mean: want ~10, got %f", res.FilteredMean)
	}
	if res.FilteredMean >= res.Mean {
		t.Errorf("filtered mean %f should be below raw mean %f", res.FilteredMean, res.Mean)
	}
}

func TestExpertJudgmentIdenticalEstimates(t *testing.T) {
	// Zero stddev keeps everything; nothing is an outlier of itself.
	res, err := ExpertJudgment([]float64{20, 20, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StdDev != 0 || res.Outliers != 0 || res.FilteredMean != 20 {
		t.Errorf("identical estimates mishandled: %+v", res)
	}
}

func TestExpertJudgmentEvenCount(t *testing.T) {
	res, err := ExpertJudgment([]float64{10, 20, 30, 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Median-25) > 0.0001 {
		t.Errorf("even-count median: want 25, got %f", res.Median)
	}
}

func TestExpertJudgmentEmpty(t *testing.T) {
	if _, err := ExpertJudgment(nil); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("empty input: want ErrInvalidInput, got %v", err)
	}
}
