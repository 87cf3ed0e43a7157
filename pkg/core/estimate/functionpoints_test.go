package estimate

import (
	"errors"
	"math"
	"testing"

	"project_economics/pkg/core/calcerr"
)

func TestFunctionPointsAverage(t *testing.T) {
	cfg := DefaultConfig()
	profile := FunctionPointProfile{
		ExternalInputs:     10,
		ExternalOutputs:    5,
		ExternalInquiries:  4,
		InternalFiles:      2,
		ExternalInterfaces: 1,
		Complexity:         Average,
	}
	res, err := FunctionPoints(profile, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10*4 + 5*5 + 4*4 + 2*10 + 1*7 = 108
	if math.Abs(res.UnadjustedFP-108) > 0.0001 {
		t.Errorf("UFP: want 108, got %f", res.UnadjustedFP)
	}
	if math.Abs(res.AdjustedFP-108) > 0.0001 { // default TCF is 1.0
		t.Errorf("AFP: want 108, got %f", res.AdjustedFP)
	}
	wantHours := 108 * cfg.HoursPerFunctionPoint
	if math.Abs(res.EffortHours-wantHours) > 0.0001 {
		t.Errorf("hours: want %f, got %f", wantHours, res.EffortHours)
	}
	if math.Abs(res.Cost-wantHours*cfg.HourlyRate) > 0.0001 {
		t.Errorf("cost: want %f, got %f", wantHours*cfg.HourlyRate, res.Cost)
	}
}

func TestFunctionPointsComplexityFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TechnicalComplexityFactor = 1.15
	profile := FunctionPointProfile{ExternalInputs: 10, Complexity: Simple}
	res, err := FunctionPoints(profile, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.AdjustedFP-30*1.15) > 0.0001 {
		t.Errorf("AFP with TCF 1.15: want %f, got %f", 30*1.15, res.AdjustedFP)
	}
}

func TestFunctionPointsAllZero(t *testing.T) {
	res, err := FunctionPoints(FunctionPointProfile{Complexity: Complex}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UnadjustedFP != 0 || res.Cost != 0 {
		t.Errorf("all-zero profile: want zero UFP and cost, got %+v", res)
	}
}

func TestFunctionPointsInvalidInput(t *testing.T) {
	cfg := DefaultConfig()
	bad := FunctionPointProfile{ExternalInputs: -1, Complexity: Simple}
	if _, err := FunctionPoints(bad, cfg); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("negative count: want ErrInvalidInput, got %v", err)
	}
	if _, err := FunctionPoints(FunctionPointProfile{Complexity: "extreme"}, cfg); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("unknown tier: want ErrInvalidInput, got %v", err)
	}
}
