package hydraulics

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goflow/internal/catalog"
	"github.com/alexiusacademia/goflow/internal/units"
)

// PartialFill holds the cross-section quantities of a part-full pipe
type PartialFill struct {
	Depth     float64 // d - flow depth (m)
	FlowRate  float64 // q - flow rate (m³/s)
	FillRatio float64 // d/D
	FlowRatio float64 // q/q_full

	CentralAngle    float64 // θ (rad)
	Area            float64 // A - wetted area (m²)
	WettedPerimeter float64 // P (m)
	HydraulicRadius float64 // R = A/P (m)
	Velocity        float64 // v = q/A (m/s)
}

// DepthFromFlowRate returns the flow depth (m) for a part-full circular
// pipe carrying flowRate, using Bretting's approximation
//
//	d = D/π · acos(3.125 - √(3.125² - 5.25 + 12.5·q/q_full))
func DepthFromFlowRate(dimension, fullFlowRate, flowRate float64) (float64, error) {
	if !(dimension > 0) {
		return 0, fmt.Errorf("%w: dimension must be positive, got %g m", ErrInvalidGeometry, dimension)
	}
	if math.IsNaN(fullFlowRate) || fullFlowRate < 0 {
		return 0, fmt.Errorf("%w: full-pipe flow rate must not be negative, got %g m³/s", ErrInvalidGeometry, fullFlowRate)
	}
	if flowRate < 0 {
		return 0, fmt.Errorf("%w: flow rate %g m³/s", ErrNegativeQuantity, flowRate)
	}
	if flowRate == 0 {
		return 0, nil
	}
	// A pipe without slope carries nothing, so any flow exceeds it.
	if fullFlowRate == 0 {
		return 0, fmt.Errorf("%w: flow rate %g m³/s in a pipe with no full-pipe capacity", ErrOverCapacity, flowRate)
	}

	p := flowRate / fullFlowRate
	if p > 1 {
		return 0, fmt.Errorf("%w: flow rate %g m³/s is %.1f%% of full-pipe flow %g m³/s", ErrOverCapacity, flowRate, p*100, fullFlowRate)
	}

	radicand := math.Pow(3.125, 2) - 5.25 + 12.5*p
	if radicand < 0 {
		return 0, fmt.Errorf("%w: negative radicand %g in depth equation", ErrInvalidGeometry, radicand)
	}
	return dimension / math.Pi * math.Acos(clampUnit(3.125-math.Sqrt(radicand))), nil
}

// FlowRateFromDepth returns the flow rate (m³/s) for a part-full circular
// pipe at the given depth, using the cosine form of Bretting's equations
//
//	q/q_full = 0.46 - 0.5·cos(π·d/D) + 0.04·cos(2π·d/D)
//
// It is not the exact inverse of DepthFromFlowRate.
func FlowRateFromDepth(dimension, fullFlowRate, depth float64) (float64, error) {
	if !(dimension > 0) {
		return 0, fmt.Errorf("%w: dimension must be positive, got %g m", ErrInvalidGeometry, dimension)
	}
	if depth < 0 {
		return 0, fmt.Errorf("%w: depth %g m", ErrNegativeQuantity, depth)
	}
	if depth > dimension {
		return 0, fmt.Errorf("%w: depth %g m exceeds pipe dimension %g m", ErrOverCapacity, depth, dimension)
	}

	if depth == 0 {
		return 0, nil
	}

	pd := depth / dimension
	pq := 0.46 - 0.5*math.Cos(math.Pi*pd) + 0.04*math.Cos(2*math.Pi*pd)
	return math.Max(0, math.Min(1, pq)) * fullFlowRate, nil
}

// CentralAngle returns the angle θ (rad) subtended by the water surface
// at the pipe centre: θ = 2·acos(1 - 2d/D)
func CentralAngle(dimension, depth float64) float64 {
	return 2 * math.Acos(clampUnit(1-2*depth/dimension))
}

// PartialArea returns the wetted cross-sectional area A = D²/8·(θ - sin θ)
func PartialArea(dimension, depth float64) float64 {
	return segmentArea(dimension, CentralAngle(dimension, depth))
}

// WettedPerimeter returns P = D·θ/2
func WettedPerimeter(dimension, depth float64) float64 {
	return dimension * CentralAngle(dimension, depth) / 2
}

// HydraulicRadius returns R = A/P, zero for an empty pipe
func HydraulicRadius(dimension, depth float64) float64 {
	perimeter := WettedPerimeter(dimension, depth)
	if perimeter == 0 {
		return 0
	}
	return PartialArea(dimension, depth) / perimeter
}

// PartialVelocity returns v = q/A for the wetted area at the given depth
func PartialVelocity(dimension, depth, flowRate float64) (float64, error) {
	if flowRate == 0 {
		return 0, nil
	}
	area := PartialArea(dimension, depth)
	if !(area > 0) {
		return 0, fmt.Errorf("%w: flow %g m³/s through zero wetted area (depth %g m)", ErrNumericDivergence, flowRate, depth)
	}
	return flowRate / area, nil
}

// FillAngleFlow calculates the flow through a part-full pipe whose wetted
// arc covers the given fraction of the circumference. The central angle is
// θ = fraction·360°, and the velocity comes from Colebrook-White driven by
// the hydraulic diameter 4R of the wetted section.
func FillAngleFlow(g Geometry, fluid catalog.FluidProperties, fraction float64) (PartialFill, error) {
	if err := g.Validate(); err != nil {
		return PartialFill{}, err
	}
	if !(fluid.KinematicViscosity > 0) {
		return PartialFill{}, fmt.Errorf("%w: kinematic viscosity must be positive, got %g m²/s", ErrInvalidFluid, fluid.KinematicViscosity)
	}
	if fraction < 0 {
		return PartialFill{}, fmt.Errorf("%w: fill fraction %g", ErrNegativeQuantity, fraction)
	}
	if fraction > 1 {
		return PartialFill{}, fmt.Errorf("%w: fill fraction %g", ErrOverCapacity, fraction)
	}

	d := g.Dimension
	theta := units.Radians(fraction * 360)

	fill := PartialFill{
		CentralAngle:    theta,
		Area:            segmentArea(d, theta),
		WettedPerimeter: d * theta / 2,
		Depth:           d / 2 * (1 - math.Cos(theta/2)),
	}
	fill.FillRatio = fill.Depth / d
	if fill.WettedPerimeter == 0 {
		return fill, nil
	}
	fill.HydraulicRadius = fill.Area / fill.WettedPerimeter

	velocity, err := colebrookWhite(4*fill.HydraulicRadius, g.Gradient, g.Roughness(), fluid.KinematicViscosity)
	if err != nil {
		return PartialFill{}, err
	}
	fill.Velocity = velocity
	fill.FlowRate = velocity * fill.Area

	fullVelocity, err := FullVelocity(g, fluid)
	if err != nil {
		return PartialFill{}, err
	}
	if full, err := FullFlowRate(g, fullVelocity); err == nil && full > 0 {
		fill.FlowRatio = fill.FlowRate / full
	}
	return fill, nil
}

func segmentArea(dimension, theta float64) float64 {
	return dimension * dimension / 8 * (theta - math.Sin(theta))
}

// clampUnit keeps acos arguments inside [-1, 1] against rounding noise
func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
