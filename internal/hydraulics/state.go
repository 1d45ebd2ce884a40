package hydraulics

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

// Condition reports which quantity currently drives a PipeState
type Condition int

const (
	ConditionNone    Condition = iota // nothing set yet
	ConditionByDepth                  // depth is authoritative, flow is derived
	ConditionByFlow                   // flow rate is authoritative, depth is derived
	ConditionInvalid                  // last assignment violated capacity
)

func (c Condition) String() string {
	switch c {
	case ConditionNone:
		return "none"
	case ConditionByDepth:
		return "by depth"
	case ConditionByFlow:
		return "by flow rate"
	case ConditionInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("condition(%d)", int(c))
	}
}

// condition is the single authoritative representation of the current
// flow: the value is a depth or a flow rate depending on kind, and err is
// set only for ConditionInvalid.
type condition struct {
	kind  Condition
	value float64
	err   error
}

// PipeState owns one pipe and one fluid and tracks its current flow.
// It is not safe for concurrent mutation.
type PipeState struct {
	geometry Geometry
	fluid    catalog.FluidProperties

	// Full-pipe quantities depend only on geometry and fluid
	fullVelocity float64 // m/s
	fullFlowRate float64 // m³/s

	current condition

	log *zap.SugaredLogger
}

// Option configures a PipeState
type Option func(*PipeState)

// WithLogger sets the logger that receives invalidation reports
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *PipeState) {
		if l != nil {
			s.log = l
		}
	}
}

// NewPipeState validates the pipe and fluid and computes the full-pipe
// velocity and flow rate.
func NewPipeState(g Geometry, fluid catalog.FluidProperties, opts ...Option) (*PipeState, error) {
	if err := fluid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFluid, err)
	}

	velocity, err := FullVelocity(g, fluid)
	if err != nil {
		return nil, err
	}
	flowRate, err := FullFlowRate(g, velocity)
	if err != nil {
		return nil, err
	}

	s := &PipeState{
		geometry:     g,
		fluid:        fluid,
		fullVelocity: velocity,
		fullFlowRate: flowRate,
		log:          zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *PipeState) Geometry() Geometry             { return s.geometry }
func (s *PipeState) Fluid() catalog.FluidProperties { return s.fluid }

// FullVelocity returns the mean velocity of the full pipe (m/s)
func (s *PipeState) FullVelocity() float64 { return s.fullVelocity }

// FullFlowRate returns the capacity of the full pipe (m³/s)
func (s *PipeState) FullFlowRate() float64 { return s.fullFlowRate }

// Condition reports which quantity is authoritative
func (s *PipeState) Condition() Condition { return s.current.kind }

// Reset clears the current flow condition
func (s *PipeState) Reset() {
	s.current = condition{}
}

// SetDepth makes depth (m) the authoritative quantity. A depth above the
// pipe dimension invalidates both depth and flow rate and returns an
// error wrapping ErrOverCapacity.
func (s *PipeState) SetDepth(depth float64) error {
	if _, err := FlowRateFromDepth(s.geometry.Dimension, s.fullFlowRate, depth); err != nil {
		return s.invalidate("depth", depth, err)
	}
	s.current = condition{kind: ConditionByDepth, value: depth}
	return nil
}

// SetFlowRate makes the flow rate (m³/s) the authoritative quantity. A flow
// above the full-pipe flow rate invalidates both depth and flow rate and
// returns an error wrapping ErrOverCapacity.
func (s *PipeState) SetFlowRate(flowRate float64) error {
	if _, err := DepthFromFlowRate(s.geometry.Dimension, s.fullFlowRate, flowRate); err != nil {
		return s.invalidate("flow rate", flowRate, err)
	}
	s.current = condition{kind: ConditionByFlow, value: flowRate}
	return nil
}

func (s *PipeState) invalidate(quantity string, value float64, cause error) error {
	s.current = condition{kind: ConditionInvalid, err: cause}
	s.log.Warnw("pipe flow condition invalidated",
		"quantity", quantity,
		"value", value,
		"dimension", s.geometry.Dimension,
		"full_flow_rate", s.fullFlowRate,
		"error", cause,
	)
	return fmt.Errorf("set %s: %w", quantity, cause)
}

// Depth returns the current flow depth (m), derived from the flow rate
// when the flow rate was set last.
func (s *PipeState) Depth() (float64, error) {
	switch s.current.kind {
	case ConditionByDepth:
		return s.current.value, nil
	case ConditionByFlow:
		return DepthFromFlowRate(s.geometry.Dimension, s.fullFlowRate, s.current.value)
	case ConditionInvalid:
		return 0, s.current.err
	default:
		return 0, ErrNoCondition
	}
}

// FlowRate returns the current flow rate (m³/s), derived from the depth
// when the depth was set last.
func (s *PipeState) FlowRate() (float64, error) {
	switch s.current.kind {
	case ConditionByFlow:
		return s.current.value, nil
	case ConditionByDepth:
		return FlowRateFromDepth(s.geometry.Dimension, s.fullFlowRate, s.current.value)
	case ConditionInvalid:
		return 0, s.current.err
	default:
		return 0, ErrNoCondition
	}
}

// Velocity returns the current mean velocity q/A (m/s)
func (s *PipeState) Velocity() (float64, error) {
	depth, err := s.Depth()
	if err != nil {
		return 0, err
	}
	flowRate, err := s.FlowRate()
	if err != nil {
		return 0, err
	}
	return PartialVelocity(s.geometry.Dimension, depth, flowRate)
}

// flowVelocity returns the current velocity when one is available, zero
// included, and the full-pipe velocity otherwise.
func (s *PipeState) flowVelocity() float64 {
	if v, err := s.Velocity(); err == nil {
		return v
	}
	return s.fullVelocity
}

// Reynolds returns the Reynolds number of the current flow, or of the full
// pipe when no current velocity is available.
func (s *PipeState) Reynolds() (float64, error) {
	return Reynolds(s.flowVelocity(), s.geometry.Dimension, s.fluid.KinematicViscosity)
}

// FrictionFactor returns the friction factor of the current flow, or of
// the full pipe when no current velocity is available.
func (s *PipeState) FrictionFactor() (FrictionResult, error) {
	re, err := s.Reynolds()
	if err != nil {
		return FrictionResult{}, err
	}
	return FrictionFactor(re, s.geometry.Dimension, s.geometry.Roughness())
}

// PartialFill summarises the current cross-section
func (s *PipeState) PartialFill() (PartialFill, error) {
	depth, err := s.Depth()
	if err != nil {
		return PartialFill{}, err
	}
	flowRate, err := s.FlowRate()
	if err != nil {
		return PartialFill{}, err
	}
	velocity, err := PartialVelocity(s.geometry.Dimension, depth, flowRate)
	if err != nil {
		return PartialFill{}, err
	}

	d := s.geometry.Dimension
	fill := PartialFill{
		Depth:           depth,
		FlowRate:        flowRate,
		FillRatio:       depth / d,
		CentralAngle:    CentralAngle(d, depth),
		Area:            PartialArea(d, depth),
		WettedPerimeter: WettedPerimeter(d, depth),
		HydraulicRadius: HydraulicRadius(d, depth),
		Velocity:        velocity,
	}
	if s.fullFlowRate > 0 {
		fill.FlowRatio = flowRate / s.fullFlowRate
	}
	return fill, nil
}

// FillAngleFlow evaluates the fill-angle partial flow for this pipe
func (s *PipeState) FillAngleFlow(fraction float64) (PartialFill, error) {
	return FillAngleFlow(s.geometry, s.fluid, fraction)
}

// IsOverCapacity reports whether the state was invalidated by a capacity
// violation.
func (s *PipeState) IsOverCapacity() bool {
	return s.current.kind == ConditionInvalid && errors.Is(s.current.err, ErrOverCapacity)
}
