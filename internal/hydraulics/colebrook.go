package hydraulics

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

// FullVelocity calculates the mean velocity (m/s) of a completely full
// circular pipe flowing under its own slope, using Colebrook-White:
//
//	v = -2·√(2gDS)·log10(k/(3.7D) + 2.51ν/(D·√(2gDS)))
func FullVelocity(g Geometry, fluid catalog.FluidProperties) (float64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	if !(fluid.KinematicViscosity > 0) {
		return 0, fmt.Errorf("%w: kinematic viscosity must be positive, got %g m²/s", ErrInvalidFluid, fluid.KinematicViscosity)
	}

	// For a full circular pipe the hydraulic diameter 4R equals D
	return colebrookWhite(g.Dimension, g.Gradient, g.Roughness(), fluid.KinematicViscosity)
}

// FullFlowRate calculates the full-pipe flow rate (m³/s) from the
// full-pipe velocity and the cross-sectional area.
func FullFlowRate(g Geometry, velocity float64) (float64, error) {
	area, err := g.FullArea()
	if err != nil {
		return 0, err
	}
	return velocity * area, nil
}

// colebrookWhite evaluates the Colebrook-White mean velocity for the given
// driving dimension dh (the hydraulic diameter 4R), slope, wall roughness
// and kinematic viscosity.
func colebrookWhite(dh, slope, roughness, viscosity float64) (float64, error) {
	if !(dh > 0) {
		return 0, fmt.Errorf("%w: hydraulic diameter must be positive, got %g m", ErrInvalidGeometry, dh)
	}
	if slope < 0 {
		return 0, fmt.Errorf("%w: gradient must be non-negative, got %g", ErrInvalidGeometry, slope)
	}
	if slope == 0 {
		// No driving head, no gravity flow
		return 0, nil
	}

	part1 := math.Sqrt(2 * catalog.GravitationalAcceleration * dh * slope)
	part2 := roughness / (3.7 * dh)
	part3 := 2.51 * viscosity / (dh * part1)

	velocity := -2 * part1 * math.Log10(part2+part3)
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) || velocity < 0 {
		return 0, fmt.Errorf("%w: Colebrook-White velocity %g m/s (k/3.7D=%g, viscous term=%g)", ErrNumericDivergence, velocity, part2, part3)
	}
	return velocity, nil
}
