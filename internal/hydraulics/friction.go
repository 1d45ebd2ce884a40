package hydraulics

import (
	"fmt"
	"math"
)

// Moody chart regime limits
const (
	LaminarLimit   = 2300.0 // Re <= 2300: laminar
	TurbulentLimit = 4000.0 // Re >= 4000: turbulent

	// newtonSteps is the last index of the Newton loop, which runs 0..3
	// inclusive for four steps in total.
	newtonSteps = 3
)

// Regime is the flow regime derived from the Reynolds number
type Regime int

const (
	Laminar Regime = iota
	Transitional
	Turbulent
)

func (r Regime) String() string {
	switch r {
	case Laminar:
		return "laminar"
	case Transitional:
		return "transitional"
	case Turbulent:
		return "turbulent"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// FrictionResult holds the outcome of a friction factor calculation
type FrictionResult struct {
	Reynolds   float64
	Regime     Regime
	Factor     float64 // Darcy friction factor f, zero when undefined
	Iterations int     // Newton steps taken, 0 for the closed-form laminar case
}

// Reynolds calculates the Reynolds number Re = v·D/ν
func Reynolds(velocity, dimension, viscosity float64) (float64, error) {
	if !(dimension > 0) {
		return 0, fmt.Errorf("%w: dimension must be positive, got %g m", ErrInvalidGeometry, dimension)
	}
	if !(viscosity > 0) {
		return 0, fmt.Errorf("%w: kinematic viscosity must be positive, got %g m²/s", ErrInvalidFluid, viscosity)
	}
	return velocity * dimension / viscosity, nil
}

// ClassifyRegime maps a Reynolds number onto the Moody chart regimes
func ClassifyRegime(re float64) Regime {
	switch {
	case re <= LaminarLimit:
		return Laminar
	case re < TurbulentLimit:
		return Transitional
	default:
		return Turbulent
	}
}

// FrictionFactor calculates the Darcy friction factor for the given
// Reynolds number, pipe dimension and absolute roughness.
//
// Laminar flow uses f = 64/Re. In the critical zone no factor can be
// given without testing and ErrUndefinedFrictionFactor is returned along
// with the classified regime. Turbulent flow solves the Colebrook equation
//
//	1/√f = -2·log10(ε/(3.7D) + 2.51/(Re·√f))
//
// with a fixed four Newton steps on x = 1/√f seeded by Haaland.
func FrictionFactor(re, dimension, roughness float64) (FrictionResult, error) {
	result := FrictionResult{Reynolds: re}

	if math.IsNaN(re) || re <= 0 {
		return result, fmt.Errorf("%w: no flow (Re=%g)", ErrUndefinedFrictionFactor, re)
	}
	if !(dimension > 0) {
		return result, fmt.Errorf("%w: dimension must be positive, got %g m", ErrInvalidGeometry, dimension)
	}

	result.Regime = ClassifyRegime(re)
	switch result.Regime {
	case Laminar:
		result.Factor = 64 / re
		return result, nil
	case Transitional:
		return result, fmt.Errorf("%w: Re=%.0f lies in the critical zone (%.0f, %.0f)", ErrUndefinedFrictionFactor, re, LaminarLimit, TurbulentLimit)
	}

	f, steps, err := solveColebrook(re, roughness/dimension)
	result.Iterations = steps
	if err != nil {
		return result, err
	}
	result.Factor = f
	return result, nil
}

// solveColebrook runs Newton's method on y(x) = x + 2·log10(a + b·x)
// where x = 1/√f, a = ε/(3.7D) and b = 2.51/Re. There is no convergence
// check; the step count is fixed.
func solveColebrook(re, relativeRoughness float64) (float64, int, error) {
	a := relativeRoughness / 3.7
	b := 2.51 / re

	x := -1.8 * math.Log10(6.9/re+math.Pow(a, 1.11))
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0, fmt.Errorf("%w: non-finite Haaland seed for a=%g, Re=%g", ErrNumericDivergence, a, re)
	}

	steps := 0
	for i := 0; i <= newtonSteps; i++ {
		arg := a + b*x
		if !(arg > 0) {
			return 0, steps, fmt.Errorf("%w: log10 of non-positive argument %g at Newton step %d", ErrNumericDivergence, arg, i)
		}
		y := x + 2*math.Log10(arg)
		dy := 1 + 2*(b/math.Ln10)/arg
		x -= y / dy
		steps++

		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, steps, fmt.Errorf("%w: non-finite iterate at Newton step %d", ErrNumericDivergence, i)
		}
	}

	if x == 0 {
		return 0, steps, fmt.Errorf("%w: Newton iterate collapsed to zero", ErrNumericDivergence)
	}
	return 1 / (x * x), steps, nil
}
