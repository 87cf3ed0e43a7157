package estimate

import (
	"fmt"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// FUNCTION POINT MODEL
// Standard IFPUG-style weight table, keyed by complexity tier.
// =============================================================================

// ComplexityTier grades the function-point categories.
type ComplexityTier string

const (
	Simple  ComplexityTier = "simple"
	Average ComplexityTier = "average"
	Complex ComplexityTier = "complex"
)

// FunctionPointProfile counts the five sizing categories.
type FunctionPointProfile struct {
	ExternalInputs     int            `json:"external_inputs"`
	ExternalOutputs    int            `json:"external_outputs"`
	ExternalInquiries  int            `json:"external_inquiries"`
	InternalFiles      int            `json:"internal_files"`
	ExternalInterfaces int            `json:"external_interfaces"`
	Complexity         ComplexityTier `json:"complexity"`
}

// Category weights in profile field order:
// inputs, outputs, inquiries, internal files, external interfaces.
var fpWeights = map[ComplexityTier][5]float64{
	Simple:  {3, 4, 3, 7, 5},
	Average: {4, 5, 4, 10, 7},
	Complex: {6, 7, 6, 15, 10},
}

// FunctionPointResult holds the sizing and the derived effort and cost.
type FunctionPointResult struct {
	UnadjustedFP float64 `json:"unadjusted_fp"`
	AdjustedFP   float64 `json:"adjusted_fp"`
	EffortHours  float64 `json:"effort_hours"`
	Cost         float64 `json:"cost"`
}

// FunctionPoints sizes a project from category counts.
//
// FORMULA: UFP = Σ (count_i * weight_i)
//
//	AFP = UFP * TechnicalComplexityFactor
//	hours = AFP * HoursPerFunctionPoint
//	cost = hours * HourlyRate
//
// All counts of zero is a valid (empty) project and yields zero cost.
func FunctionPoints(profile FunctionPointProfile, cfg Config) (FunctionPointResult, error) {
	weights, ok := fpWeights[profile.Complexity]
	if !ok {
		return FunctionPointResult{}, fmt.Errorf("%w: unknown complexity tier %q", calcerr.ErrInvalidInput, profile.Complexity)
	}

	counts := [5]int{
		profile.ExternalInputs,
		profile.ExternalOutputs,
		profile.ExternalInquiries,
		profile.InternalFiles,
		profile.ExternalInterfaces,
	}
	var ufp float64
	for i, count := range counts {
		if count < 0 {
			return FunctionPointResult{}, fmt.Errorf("%w: negative function point count %d", calcerr.ErrInvalidInput, count)
		}
		ufp += float64(count) * weights[i]
	}

	afp := ufp * cfg.TechnicalComplexityFactor
	hours := afp * cfg.HoursPerFunctionPoint

	return FunctionPointResult{
		UnadjustedFP: ufp,
		AdjustedFP:   afp,
		EffortHours:  hours,
		Cost:         hours * cfg.HourlyRate,
	}, nil
}
