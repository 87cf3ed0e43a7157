package risk

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/stat"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// MONTE CARLO SIMULATION
// Trials are independent and run across a worker pool; each worker uses
// its own random stream derived from the base seed, and outcomes are
// concatenated before statistics. Summary statistics are order
// independent, so trial scheduling never affects the result.
//
// Formula failure policy: fail fast. A formula referencing an undeclared
// variable or yielding a non-finite value aborts the whole run. No
// sentinel value is ever substituted for a failing trial.
// =============================================================================

// Iteration bounds for a single run.
const (
	MinIterations = 100
	MaxIterations = 100000
)

const defaultHistogramBins = 20

// SimulationConfig describes one Monte Carlo run.
type SimulationConfig struct {
	Variables       map[string]Variable `json:"variables"`
	Iterations      int                 `json:"iterations"`
	Formula         string              `json:"formula"`
	ConfidenceLevel float64             `json:"confidence_level"` // e.g. 0.95
	Bins            int                 `json:"bins,omitempty"`   // histogram bins, default 20
	Seed            int64               `json:"seed,omitempty"`   // 0 means non-deterministic
	Workers         int                 `json:"workers,omitempty"`
}

// SimulationResult holds the outcome distribution's summary and risk
// statistics.
type SimulationResult struct {
	Iterations        int            `json:"iterations"`
	Mean              float64        `json:"mean"`
	Median            float64        `json:"median"`
	StdDev            float64        `json:"std_dev"` // population standard deviation
	Min               float64        `json:"min"`
	Max               float64        `json:"max"`
	ConfidenceLevel   float64        `json:"confidence_level"`
	ConfidenceLo      float64        `json:"confidence_lo"`
	ConfidenceHi      float64        `json:"confidence_hi"`
	Percentiles       map[string]float64 `json:"percentiles"` // p5, p25, p50, p75, p95
	ProbabilityOfLoss float64            `json:"probability_of_loss"`
	ValueAtRisk       float64            `json:"value_at_risk"`             // 5th-percentile outcome
	ConditionalVaR    float64            `json:"conditional_value_at_risk"` // mean of outcomes <= VaR
	Histogram         []HistogramBin     `json:"histogram"`
}

// percentile is the order statistic at floor(n*p) of a sorted sample.
func percentile(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Simulate runs the configured number of trials and summarizes the
// outcome distribution.
func Simulate(cfg SimulationConfig) (*SimulationResult, error) {
	if cfg.Iterations < MinIterations || cfg.Iterations > MaxIterations {
		return nil, fmt.Errorf("%w: iterations must be in [%d, %d], got %d",
			calcerr.ErrInvalidInput, MinIterations, MaxIterations, cfg.Iterations)
	}
	if len(cfg.Variables) == 0 {
		return nil, fmt.Errorf("%w: simulation needs at least one variable", calcerr.ErrInvalidInput)
	}
	for name, v := range cfg.Variables {
		if err := v.validate(name); err != nil {
			return nil, err
		}
	}
	if cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel >= 1 {
		return nil, fmt.Errorf("%w: confidence level must be in (0, 1), got %v", calcerr.ErrInvalidInput, cfg.ConfidenceLevel)
	}

	// Compile once up front so a syntax error fails before any work.
	if _, err := govaluate.NewEvaluableExpression(cfg.Formula); err != nil {
		return nil, fmt.Errorf("%w: %v", calcerr.ErrFormulaEvaluation, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cfg.Iterations {
		workers = cfg.Iterations
	}

	outcomes, err := runTrials(cfg, seed, workers)
	if err != nil {
		return nil, err
	}

	sort.Float64s(outcomes)
	return summarize(outcomes, cfg), nil
}

// runTrials fans the iterations out over the worker pool and merges the
// outcomes by concatenation.
func runTrials(cfg SimulationConfig, seed int64, workers int) ([]float64, error) {
	chunks := make([][]float64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup

	base := cfg.Iterations / workers
	extra := cfg.Iterations % workers

	for w := 0; w < workers; w++ {
		count := base
		if w < extra {
			count++
		}
		wg.Add(1)
		go func(w, count int) {
			defer wg.Done()
			chunks[w], errs[w] = trialWorker(cfg, seed+int64(w)*0x9E3779B9, count)
		}(w, count)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	outcomes := make([]float64, 0, cfg.Iterations)
	for _, chunk := range chunks {
		outcomes = append(outcomes, chunk...)
	}
	return outcomes, nil
}

// trialWorker runs count trials on its own random stream and its own
// compiled copy of the formula.
func trialWorker(cfg SimulationConfig, seed int64, count int) ([]float64, error) {
	expr, err := govaluate.NewEvaluableExpression(cfg.Formula)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", calcerr.ErrFormulaEvaluation, err)
	}

	// Draw in a fixed name order so a seeded run is reproducible.
	names := make([]string, 0, len(cfg.Variables))
	for name := range cfg.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	rng := rand.New(rand.NewSource(seed))
	params := make(map[string]interface{}, len(cfg.Variables))
	outcomes := make([]float64, 0, count)

	for i := 0; i < count; i++ {
		for _, name := range names {
			params[name] = cfg.Variables[name].sample(rng)
		}
		raw, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", calcerr.ErrFormulaEvaluation, err)
		}
		value, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: formula %q produced non-numeric result %v", calcerr.ErrFormulaEvaluation, cfg.Formula, raw)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: formula %q produced non-finite result", calcerr.ErrFormulaEvaluation, cfg.Formula)
		}
		outcomes = append(outcomes, value)
	}
	return outcomes, nil
}

// summarize computes the distribution statistics over sorted outcomes.
func summarize(sorted []float64, cfg SimulationConfig) *SimulationResult {
	n := len(sorted)
	alpha := 1 - cfg.ConfidenceLevel

	// Empirical interval by order-statistic indexing.
	loIdx := int(math.Floor(float64(n) * alpha / 2))
	hiIdx := int(math.Floor(float64(n) * (1 - alpha/2)))
	if hiIdx > n-1 {
		hiIdx = n - 1
	}

	losses := 0
	for _, v := range sorted {
		if v < 0 {
			losses++
		}
	}

	valueAtRisk := percentile(sorted, 0.05)

	var tailSum float64
	tailCount := 0
	for _, v := range sorted {
		if v > valueAtRisk {
			break
		}
		tailSum += v
		tailCount++
	}
	cvar := valueAtRisk
	if tailCount > 0 {
		cvar = tailSum / float64(tailCount)
	}

	bins := cfg.Bins
	if bins <= 0 {
		bins = defaultHistogramBins
	}

	return &SimulationResult{
		Iterations:        n,
		Mean:              stat.Mean(sorted, nil),
		Median:            medianSorted(sorted),
		StdDev:            stat.PopStdDev(sorted, nil),
		Min:               sorted[0],
		Max:               sorted[n-1],
		ConfidenceLevel:   cfg.ConfidenceLevel,
		ConfidenceLo:      sorted[loIdx],
		ConfidenceHi:      sorted[hiIdx],
		Percentiles: map[string]float64{
			"p5":  valueAtRisk,
			"p25": percentile(sorted, 0.25),
			"p50": percentile(sorted, 0.50),
			"p75": percentile(sorted, 0.75),
			"p95": percentile(sorted, 0.95),
		},
		ProbabilityOfLoss: float64(losses) / float64(n),
		ValueAtRisk:       valueAtRisk,
		ConditionalVaR:    cvar,
		Histogram:         buildHistogram(sorted, bins),
	}
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
