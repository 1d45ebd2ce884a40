package hydraulics

import "errors"

var (
	// ErrInvalidGeometry is returned for a non-positive dimension, a negative
	// gradient, or any input that would take the root of a negative number.
	ErrInvalidGeometry = errors.New("invalid pipe geometry")

	// ErrInvalidFluid is returned for non-positive fluid properties.
	ErrInvalidFluid = errors.New("invalid fluid properties")

	// ErrOverCapacity is returned when a flow rate or depth exceeds what the
	// full pipe can carry. A PipeState that sees it drops both depth and flow.
	ErrOverCapacity = errors.New("exceeds full-pipe capacity")

	// ErrUndefinedFrictionFactor is returned when no friction factor exists
	// for the flow regime, e.g. the critical zone 2300 < Re < 4000.
	ErrUndefinedFrictionFactor = errors.New("friction factor undefined for flow regime")

	// ErrNumericDivergence is returned when an intermediate value leaves the
	// domain of the equations, such as the log of a non-positive number.
	ErrNumericDivergence = errors.New("numeric divergence")

	// ErrNegativeQuantity is returned for a negative depth, flow rate or
	// fill fraction.
	ErrNegativeQuantity = errors.New("negative quantity")

	// ErrNoCondition is returned when neither depth nor flow rate has been set.
	ErrNoCondition = errors.New("no flow condition set")
)
