// Command scenario runs one project scenario end to end: estimation
// models, financial metrics, risk analysis, and a cross-model summary.
// The scenario comes from a YAML or HJSON file; the result envelope is
// written as JSON to stdout or -out.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"project_economics/pkg/core/compare"
	"project_economics/pkg/core/estimate"
	"project_economics/pkg/core/finance"
	"project_economics/pkg/core/risk"

	json "github.com/goccy/go-json"
)

// Envelope is the single output record of a run.
type Envelope struct {
	RunID      string    `json:"run_id"`
	Scenario   string    `json:"scenario"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Cocomo         *estimate.CocomoResult        `json:"cocomo,omitempty"`
	FunctionPoints *estimate.FunctionPointResult `json:"function_points,omitempty"`
	Expert         *estimate.ExpertResult        `json:"expert,omitempty"`
	Regression     *estimate.RegressionResult    `json:"regression,omitempty"`
	Financials     *finance.AnalysisResult       `json:"financials,omitempty"`
	Sensitivity    *risk.SensitivityResult       `json:"sensitivity,omitempty"`
	DecisionTree   *risk.TreeResult              `json:"decision_tree,omitempty"`
	MonteCarlo     *risk.SimulationResult        `json:"monte_carlo,omitempty"`
	EffortSummary  *compare.Summary              `json:"effort_summary,omitempty"`
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "scenario file (.yaml, .yml, or .hjson)")
	outPath := flag.String("out", "", "write the result envelope here instead of stdout")
	flag.Parse()

	// Optional .env for rate overrides; absence is fine.
	godotenv.Load()

	scenario, err := LoadScenario(*scenarioPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}

	envelope := &Envelope{
		RunID:     uuid.NewString(),
		Scenario:  scenario.Name,
		StartedAt: time.Now().UTC(),
	}
	if err := run(scenario, envelope); err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
	envelope.FinishedAt = time.Now().UTC()

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		fmt.Printf("[FATAL] encoding envelope: %v\n", err)
		os.Exit(1)
	}
	if *outPath == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Printf("[FATAL] writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("[DONE] run %s written to %s\n", envelope.RunID, *outPath)
}

// run executes every section the scenario declares.
func run(s *Scenario, envelope *Envelope) error {
	cfg := s.EstimateConfig()
	var efforts []estimate.CocomoResult

	if s.Project != nil {
		res, err := estimate.Cocomo(estimate.CocomoInput{
			SizeKLOC: s.Project.SizeKLOC,
			Type:     estimate.ProjectType(s.Project.Type),
			TeamSize: s.Project.TeamSize,
		}, cfg)
		if err != nil {
			return fmt.Errorf("parametric model: %w", err)
		}
		envelope.Cocomo = &res
		efforts = append(efforts, res)

		// Side-by-side effort comparison across all project classes.
		for _, pt := range []estimate.ProjectType{estimate.Organic, estimate.Semidetached, estimate.Embedded} {
			if pt == res.Type {
				continue
			}
			alt, err := estimate.Cocomo(estimate.CocomoInput{SizeKLOC: s.Project.SizeKLOC, Type: pt}, cfg)
			if err != nil {
				return fmt.Errorf("parametric model (%s): %w", pt, err)
			}
			efforts = append(efforts, alt)
		}
		summary, err := compare.Efforts(efforts)
		if err != nil {
			return fmt.Errorf("effort comparison: %w", err)
		}
		envelope.EffortSummary = &summary
	}

	if s.FunctionPoints != nil {
		res, err := estimate.FunctionPoints(*s.FunctionPoints, cfg)
		if err != nil {
			return fmt.Errorf("function points: %w", err)
		}
		envelope.FunctionPoints = &res
	}

	if len(s.ExpertEstimates) > 0 {
		res, err := estimate.ExpertJudgment(s.ExpertEstimates)
		if err != nil {
			return fmt.Errorf("expert judgment: %w", err)
		}
		envelope.Expert = &res
	}

	if s.Regression != nil {
		res, err := estimate.Regression(s.Regression.History, s.Regression.TargetSize)
		if err != nil {
			return fmt.Errorf("regression: %w", err)
		}
		envelope.Regression = &res
	}

	if s.CashFlow != nil {
		res, err := finance.Analyze(*s.CashFlow, s.ScorePolicy())
		if err != nil {
			return fmt.Errorf("financial analysis: %w", err)
		}
		envelope.Financials = &res

		if len(s.Sensitivity) > 0 {
			sens, err := risk.Sensitivity(*s.CashFlow, s.Sensitivity)
			if err != nil {
				return fmt.Errorf("sensitivity analysis: %w", err)
			}
			envelope.Sensitivity = sens
		}
	}

	if s.DecisionTree != nil {
		res, err := risk.EvaluateTree(*s.DecisionTree)
		if err != nil {
			return fmt.Errorf("decision tree: %w", err)
		}
		envelope.DecisionTree = &res
	}

	if s.MonteCarlo != nil {
		res, err := risk.Simulate(*s.MonteCarlo)
		if err != nil {
			return fmt.Errorf("monte carlo: %w", err)
		}
		envelope.MonteCarlo = res
	}

	return nil
}
