package risk

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"project_economics/pkg/core/calcerr"
)

func TestSimulateStandardNormal(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"x": {Distribution: Normal, Mean: 0, StdDev: 1}},
		Iterations:      10000,
		Formula:         "x",
		ConfidenceLevel: 0.95,
		Seed:            42,
	}
	res, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Statistical tolerance, not exact equality.
	if math.Abs(res.Mean) > 0.05 {
		t.Errorf("mean of N(0,1) sample: want ~0, got %f", res.Mean)
	}
	if math.Abs(res.StdDev-1) > 0.05 {
		t.Errorf("stddev of N(0,1) sample: want ~1, got %f", res.StdDev)
	}
	if math.Abs(res.ProbabilityOfLoss-0.5) > 0.05 {
		t.Errorf("P(loss) for symmetric distribution: want ~0.5, got %f", res.ProbabilityOfLoss)
	}
	// 5th percentile of N(0,1) is about -1.645; CVaR sits further left.
	if math.Abs(res.ValueAtRisk-(-1.645)) > 0.15 {
		t.Errorf("VaR(5%%): want ~-1.645, got %f", res.ValueAtRisk)
	}
	if res.ConditionalVaR >= res.ValueAtRisk {
		t.Errorf("CVaR %f should be below VaR %f", res.ConditionalVaR, res.ValueAtRisk)
	}
	if res.ConfidenceLo >= res.Mean || res.ConfidenceHi <= res.Mean {
		t.Errorf("confidence interval [%f, %f] should bracket the mean", res.ConfidenceLo, res.ConfidenceHi)
	}
	if res.Percentiles["p5"] != res.ValueAtRisk {
		t.Errorf("p5 percentile %f should equal VaR %f", res.Percentiles["p5"], res.ValueAtRisk)
	}
	if math.Abs(res.Percentiles["p50"]-res.Median) > 0.01 {
		t.Errorf("p50 %f should sit at the median %f", res.Percentiles["p50"], res.Median)
	}
}

func TestSimulateSeededRunsAgree(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"x": {Distribution: Uniform, Min: 0, Max: 10}},
		Iterations:      1000,
		Formula:         "x * 2",
		ConfidenceLevel: 0.90,
		Seed:            7,
		Workers:         4,
	}
	a, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Mean != b.Mean || a.StdDev != b.StdDev || a.Min != b.Min || a.Max != b.Max {
		t.Errorf("seeded runs disagree: %+v vs %+v", a, b)
	}
}

func TestSimulateUniformBounds(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"u": {Distribution: Uniform, Min: 5, Max: 15}},
		Iterations:      5000,
		Formula:         "u",
		ConfidenceLevel: 0.95,
		Seed:            1,
	}
	res, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Min < 5 || res.Max > 15 {
		t.Errorf("uniform outcomes escaped [5, 15]: min %f max %f", res.Min, res.Max)
	}
	if math.Abs(res.Mean-10) > 0.2 {
		t.Errorf("uniform mean: want ~10, got %f", res.Mean)
	}
	if res.ProbabilityOfLoss != 0 {
		t.Errorf("all-positive outcomes: want P(loss) 0, got %f", res.ProbabilityOfLoss)
	}
}

func TestSimulateTriangular(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"c": {Distribution: Triangular, Min: 100, Mode: 200, Max: 400}},
		Iterations:      10000,
		Formula:         "c",
		ConfidenceLevel: 0.95,
		Seed:            3,
	}
	res, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Min < 100 || res.Max > 400 {
		t.Errorf("triangular outcomes escaped [100, 400]: min %f max %f", res.Min, res.Max)
	}
	// Triangular mean = (min + mode + max) / 3.
	want := (100.0 + 200.0 + 400.0) / 3
	if math.Abs(res.Mean-want) > 5 {
		t.Errorf("triangular mean: want ~%f, got %f", want, res.Mean)
	}
}

func TestSimulateHistogram(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"u": {Distribution: Uniform, Min: 0, Max: 1}},
		Iterations:      2000,
		Formula:         "u",
		ConfidenceLevel: 0.95,
		Seed:            9,
		Bins:            10,
	}
	res, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Histogram) != 10 {
		t.Fatalf("want 10 bins, got %d", len(res.Histogram))
	}
	total := 0
	for _, bin := range res.Histogram {
		total += bin.Count
	}
	if total != 2000 {
		t.Errorf("histogram counts must cover every outcome: want 2000, got %d", total)
	}
	if res.Histogram[0].Low != res.Min || res.Histogram[9].High != res.Max {
		t.Errorf("histogram must span min..max, got [%f, %f]", res.Histogram[0].Low, res.Histogram[9].High)
	}
}

func TestSimulateUndeclaredVariableAborts(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"x": {Distribution: Normal, Mean: 0, StdDev: 1}},
		Iterations:      100,
		Formula:         "x + y",
		ConfidenceLevel: 0.95,
		Seed:            1,
	}
	if _, err := Simulate(cfg); !errors.Is(err, calcerr.ErrFormulaEvaluation) {
		t.Errorf("undeclared variable: want ErrFormulaEvaluation, got %v", err)
	}
}

func TestSimulateNonFiniteAborts(t *testing.T) {
	cfg := SimulationConfig{
		Variables:       map[string]Variable{"x": {Distribution: Uniform, Min: 0, Max: 1}},
		Iterations:      100,
		Formula:         "1 / (x - x)", // division by zero every trial
		ConfidenceLevel: 0.95,
		Seed:            1,
	}
	if _, err := Simulate(cfg); !errors.Is(err, calcerr.ErrFormulaEvaluation) {
		t.Errorf("non-finite result: want ErrFormulaEvaluation, got %v", err)
	}
}

func TestSimulateConfigValidation(t *testing.T) {
	good := SimulationConfig{
		Variables:       map[string]Variable{"x": {Distribution: Normal, Mean: 0, StdDev: 1}},
		Iterations:      100,
		Formula:         "x",
		ConfidenceLevel: 0.95,
	}

	tooFew := good
	tooFew.Iterations = MinIterations - 1
	if _, err := Simulate(tooFew); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("iterations below bound: want ErrInvalidInput, got %v", err)
	}

	tooMany := good
	tooMany.Iterations = MaxIterations + 1
	if _, err := Simulate(tooMany); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("iterations above bound: want ErrInvalidInput, got %v", err)
	}

	noVars := good
	noVars.Variables = nil
	if _, err := Simulate(noVars); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("no variables: want ErrInvalidInput, got %v", err)
	}

	badConfidence := good
	badConfidence.ConfidenceLevel = 1.5
	if _, err := Simulate(badConfidence); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("confidence out of range: want ErrInvalidInput, got %v", err)
	}

	badStdDev := good
	badStdDev.Variables = map[string]Variable{"x": {Distribution: Normal, Mean: 0, StdDev: -1}}
	if _, err := Simulate(badStdDev); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("negative stddev: want ErrInvalidInput, got %v", err)
	}
}

func TestVariableSamplingDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tri := Variable{Distribution: Triangular, Min: 0, Mode: 5, Max: 10}
	for i := 0; i < 1000; i++ {
		v := tri.sample(rng)
		if v < 0 || v > 10 {
			t.Fatalf("triangular sample %f outside [0, 10]", v)
		}
	}
}
