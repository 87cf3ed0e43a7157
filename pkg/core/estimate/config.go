// Package estimate provides deterministic size, effort, and cost models
// for software projects: a parametric effort model, function-point
// sizing, expert-judgment statistics, and regression over historical data.
package estimate

// =============================================================================
// MODEL CONSTANTS
// Threaded explicitly into every operation so the models stay pure and
// testable with injected values. Nothing in this package reads globals.
// =============================================================================

// Config carries the monetary and calibration constants used by the models.
type Config struct {
	// PersonMonthRate is the cost of one person-month of effort.
	PersonMonthRate float64 `json:"person_month_rate"`

	// HourlyRate is the cost of one effort-hour (function-point model).
	HourlyRate float64 `json:"hourly_rate"`

	// HoursPerFunctionPoint converts adjusted function points to effort.
	HoursPerFunctionPoint float64 `json:"hours_per_function_point"`

	// TechnicalComplexityFactor scales unadjusted function points to
	// adjusted ones. 1.0 means no adjustment.
	TechnicalComplexityFactor float64 `json:"technical_complexity_factor"`
}

// DefaultConfig returns the standard rate set. Callers with their own
// calibration pass a modified copy instead.
func DefaultConfig() Config {
	return Config{
		PersonMonthRate:           5000.0,
		HourlyRate:                50.0,
		HoursPerFunctionPoint:     8.0,
		TechnicalComplexityFactor: 1.0,
	}
}
