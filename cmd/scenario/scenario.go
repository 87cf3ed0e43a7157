package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"project_economics/pkg/core/estimate"
	"project_economics/pkg/core/finance"
	"project_economics/pkg/core/risk"

	json "github.com/goccy/go-json"
)

// RateOverrides adjusts the estimation constants; zero fields keep the
// defaults.
type RateOverrides struct {
	PersonMonthRate           float64 `json:"person_month_rate"`
	HourlyRate                float64 `json:"hourly_rate"`
	HoursPerFunctionPoint     float64 `json:"hours_per_function_point"`
	TechnicalComplexityFactor float64 `json:"technical_complexity_factor"`
}

// PolicyOverrides adjusts the recommendation thresholds.
type PolicyOverrides struct {
	ROIThresholdPercent float64 `json:"roi_threshold_percent"`
	PaybackLimitPeriods float64 `json:"payback_limit_periods"`
}

// ProjectSection feeds the parametric model.
type ProjectSection struct {
	SizeKLOC float64 `json:"size_kloc"`
	Type     string  `json:"type"`
	TeamSize int     `json:"team_size"`
}

// RegressionSection feeds the historical-data model.
type RegressionSection struct {
	History    []estimate.DataPoint `json:"history"`
	TargetSize float64              `json:"target_size"`
}

// Scenario is the file-level input record. YAML and HJSON both route
// through JSON field names, so one tag set covers every format.
type Scenario struct {
	Name   string           `json:"name"`
	Rates  *RateOverrides   `json:"rates,omitempty"`
	Policy *PolicyOverrides `json:"policy,omitempty"`

	Project         *ProjectSection                `json:"project,omitempty"`
	FunctionPoints  *estimate.FunctionPointProfile `json:"function_points,omitempty"`
	ExpertEstimates []float64                      `json:"expert_estimates,omitempty"`
	Regression      *RegressionSection             `json:"regression,omitempty"`

	CashFlow    *finance.CashFlowSeries `json:"cash_flow,omitempty"`
	Sensitivity map[string]risk.Range   `json:"sensitivity,omitempty"`

	DecisionTree *risk.Tree             `json:"decision_tree,omitempty"`
	MonteCarlo   *risk.SimulationConfig `json:"monte_carlo,omitempty"`
}

// LoadScenario reads and decodes a scenario file, then applies any
// environment overrides.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var scenario Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		// Decode generically, then re-route through JSON so the core
		// types keep a single tag set.
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		jsonData, err := json.Marshal(stringifyKeys(raw))
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", path, err)
		}
		if err := json.Unmarshal(jsonData, &scenario); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".hjson", ".json":
		if err := hjson.Unmarshal(data, &scenario); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", ext)
	}

	scenario.applyEnvOverrides()
	return &scenario, nil
}

// stringifyKeys converts yaml.v2's map[interface{}]interface{} trees
// into JSON-encodable map[string]interface{} ones.
func stringifyKeys(v interface{}) interface{} {
	switch node := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for key, value := range node {
			out[fmt.Sprintf("%v", key)] = stringifyKeys(value)
		}
		return out
	case []interface{}:
		for i, value := range node {
			node[i] = stringifyKeys(value)
		}
		return node
	default:
		return v
	}
}

// applyEnvOverrides lets the environment adjust the monetary rates
// without editing the scenario file.
func (s *Scenario) applyEnvOverrides() {
	override := func(name string, target *float64) {
		raw := os.Getenv(name)
		if raw == "" {
			return
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			*target = v
		}
	}
	if s.Rates == nil {
		if os.Getenv("PERSON_MONTH_RATE") == "" && os.Getenv("HOURLY_RATE") == "" {
			return
		}
		s.Rates = &RateOverrides{}
	}
	override("PERSON_MONTH_RATE", &s.Rates.PersonMonthRate)
	override("HOURLY_RATE", &s.Rates.HourlyRate)
}

// EstimateConfig merges the scenario's rates over the defaults.
func (s *Scenario) EstimateConfig() estimate.Config {
	cfg := estimate.DefaultConfig()
	if s.Rates == nil {
		return cfg
	}
	if s.Rates.PersonMonthRate > 0 {
		cfg.PersonMonthRate = s.Rates.PersonMonthRate
	}
	if s.Rates.HourlyRate > 0 {
		cfg.HourlyRate = s.Rates.HourlyRate
	}
	if s.Rates.HoursPerFunctionPoint > 0 {
		cfg.HoursPerFunctionPoint = s.Rates.HoursPerFunctionPoint
	}
	if s.Rates.TechnicalComplexityFactor > 0 {
		cfg.TechnicalComplexityFactor = s.Rates.TechnicalComplexityFactor
	}
	return cfg
}

// ScorePolicy merges the scenario's thresholds over the defaults.
func (s *Scenario) ScorePolicy() finance.ScorePolicy {
	policy := finance.DefaultScorePolicy()
	if s.Policy == nil {
		return policy
	}
	if s.Policy.ROIThresholdPercent > 0 {
		policy.ROIThresholdPercent = s.Policy.ROIThresholdPercent
	}
	if s.Policy.PaybackLimitPeriods > 0 {
		policy.PaybackLimitPeriods = s.Policy.PaybackLimitPeriods
	}
	return policy
}
