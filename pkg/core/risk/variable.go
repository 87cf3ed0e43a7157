// Package risk implements the probabilistic decision-support engine:
// one-at-a-time sensitivity analysis, decision-tree backward induction,
// and Monte Carlo simulation over named random variables.
package risk

import (
	"fmt"
	"math"
	"math/rand"

	"project_economics/pkg/core/calcerr"
)

// Distribution names the supported sampling distributions.
type Distribution string

const (
	Normal     Distribution = "normal"
	Uniform    Distribution = "uniform"
	Triangular Distribution = "triangular"
)

// Variable declares one random input of a simulation. Parameter fields
// are distribution-specific: Mean/StdDev for normal, Min/Max for
// uniform, Min/Mode/Max for triangular.
type Variable struct {
	Distribution Distribution `json:"distribution"`
	Mean         float64      `json:"mean,omitempty"`
	StdDev       float64      `json:"std_dev,omitempty"`
	Min          float64      `json:"min,omitempty"`
	Max          float64      `json:"max,omitempty"`
	Mode         float64      `json:"mode,omitempty"`
}

func (v Variable) validate(name string) error {
	switch v.Distribution {
	case Normal:
		if v.StdDev <= 0 {
			return fmt.Errorf("%w: variable %q needs a positive standard deviation", calcerr.ErrInvalidInput, name)
		}
	case Uniform:
		if v.Min >= v.Max {
			return fmt.Errorf("%w: variable %q needs min < max", calcerr.ErrInvalidInput, name)
		}
	case Triangular:
		if v.Min >= v.Max || v.Mode < v.Min || v.Mode > v.Max {
			return fmt.Errorf("%w: variable %q needs min <= mode <= max with min < max", calcerr.ErrInvalidInput, name)
		}
	default:
		return fmt.Errorf("%w: variable %q has unknown distribution %q", calcerr.ErrInvalidInput, name, v.Distribution)
	}
	return nil
}

// sample draws one value from the variable's distribution using the
// given stream. Each worker owns its stream; no generator state is
// shared across goroutines.
func (v Variable) sample(rng *rand.Rand) float64 {
	switch v.Distribution {
	case Normal:
		// Box-Muller transform.
		u1 := rng.Float64()
		for u1 == 0 {
			u1 = rng.Float64()
		}
		u2 := rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		return v.Mean + v.StdDev*z
	case Uniform:
		return v.Min + rng.Float64()*(v.Max-v.Min)
	case Triangular:
		// Inverse CDF, piecewise around the mode.
		u := rng.Float64()
		span := v.Max - v.Min
		cut := (v.Mode - v.Min) / span
		if u < cut {
			return v.Min + math.Sqrt(u*span*(v.Mode-v.Min))
		}
		return v.Max - math.Sqrt((1-u)*span*(v.Max-v.Mode))
	}
	return 0 // unreachable after validate
}
