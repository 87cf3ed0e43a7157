package estimate

import (
	"fmt"
	"math"

	"project_economics/pkg/core/calcerr"
)

// =============================================================================
// PARAMETRIC EFFORT MODEL (Basic COCOMO)
// =============================================================================

// ProjectType selects the empirical constant set for the parametric model.
type ProjectType string

const (
	Organic      ProjectType = "organic"      // small team, familiar problem
	Semidetached ProjectType = "semidetached" // mixed experience
	Embedded     ProjectType = "embedded"     // tight hardware/operational constraints
)

// cocomoConstants is one (a, b, c, d) tuple of the effort and schedule
// equations: effort = a * KLOC^b, schedule = c * effort^d.
type cocomoConstants struct {
	A, B, C, D float64
}

var cocomoTable = map[ProjectType]cocomoConstants{
	Organic:      {A: 2.4, B: 1.05, C: 2.5, D: 0.38},
	Semidetached: {A: 3.0, B: 1.12, C: 2.5, D: 0.35},
	Embedded:     {A: 3.6, B: 1.20, C: 2.5, D: 0.32},
}

// CocomoInput is the parametric model's input record.
type CocomoInput struct {
	SizeKLOC float64     `json:"size_kloc"`
	Type     ProjectType `json:"project_type"`
	TeamSize int         `json:"team_size,omitempty"` // optional, echoed when >= 1
}

// CocomoResult holds the derived effort, schedule, and cost figures.
type CocomoResult struct {
	Type               ProjectType `json:"project_type"`
	EffortPersonMonths float64     `json:"effort_person_months"`
	ScheduleMonths     float64     `json:"schedule_months"`
	AverageTeamSize    float64     `json:"average_team_size"`
	TeamSize           int         `json:"team_size,omitempty"`
	Cost               float64     `json:"cost"`
	Productivity       float64     `json:"productivity"` // KLOC per person-month
}

// Cocomo computes effort, schedule, average team size, cost, and
// productivity from project size and type.
//
// FORMULA: effort = a * KLOC^b  (person-months)
//
//	schedule = c * effort^d  (months)
//	cost = effort * PersonMonthRate
func Cocomo(input CocomoInput, cfg Config) (CocomoResult, error) {
	if input.SizeKLOC <= 0 {
		return CocomoResult{}, fmt.Errorf("%w: size must be positive KLOC, got %v", calcerr.ErrInvalidInput, input.SizeKLOC)
	}
	consts, ok := cocomoTable[input.Type]
	if !ok {
		return CocomoResult{}, fmt.Errorf("%w: unknown project type %q", calcerr.ErrInvalidInput, input.Type)
	}
	if input.TeamSize < 0 {
		return CocomoResult{}, fmt.Errorf("%w: team size must be >= 1 when given, got %d", calcerr.ErrInvalidInput, input.TeamSize)
	}

	effort := consts.A * math.Pow(input.SizeKLOC, consts.B)
	schedule := consts.C * math.Pow(effort, consts.D)

	return CocomoResult{
		Type:               input.Type,
		EffortPersonMonths: effort,
		ScheduleMonths:     schedule,
		AverageTeamSize:    effort / schedule,
		TeamSize:           input.TeamSize,
		Cost:               effort * cfg.PersonMonthRate,
		Productivity:       input.SizeKLOC / effort,
	}, nil
}
