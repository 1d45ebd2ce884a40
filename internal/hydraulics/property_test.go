package hydraulics

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

// TestPipeStateInvariants checks that every accepted assignment keeps
// depth within the pipe and flow within capacity, and that every rejected
// one leaves nothing behind.
func TestPipeStateInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("flow within capacity yields depth within pipe", prop.ForAll(
		func(dimension, gradient, fraction float64) bool {
			g, err := NewGeometry(catalog.Concrete, dimension, gradient)
			if err != nil {
				return false
			}
			s, err := NewPipeState(g, catalog.Water.Properties())
			if err != nil {
				return false
			}
			if err := s.SetFlowRate(fraction * s.FullFlowRate()); err != nil {
				return false
			}
			depth, err := s.Depth()
			return err == nil && depth >= 0 && depth <= dimension*(1+1e-12)
		},
		gen.Float64Range(0.05, 2.0),
		gen.Float64Range(0.0005, 0.1),
		gen.Float64Range(0, 1),
	))

	properties.Property("depth within pipe yields flow within capacity", prop.ForAll(
		func(dimension, fillRatio float64) bool {
			g, err := NewGeometry(catalog.Plastic, dimension, 0.01)
			if err != nil {
				return false
			}
			s, err := NewPipeState(g, catalog.Water.Properties())
			if err != nil {
				return false
			}
			if err := s.SetDepth(fillRatio * dimension); err != nil {
				return false
			}
			q, err := s.FlowRate()
			return err == nil && q >= 0 && q <= s.FullFlowRate()*(1+1e-12)
		},
		gen.Float64Range(0.05, 2.0),
		gen.Float64Range(0, 1),
	))

	properties.Property("over capacity flow poisons both quantities", prop.ForAll(
		func(excess float64) bool {
			g, _ := NewGeometry(catalog.Concrete, 0.225, 0.01)
			s, _ := NewPipeState(g, catalog.Water.Properties())
			_ = s.SetDepth(0.1)

			err := s.SetFlowRate(s.FullFlowRate() * (1 + excess))
			_, depthErr := s.Depth()
			_, flowErr := s.FlowRate()
			return errors.Is(err, ErrOverCapacity) &&
				errors.Is(depthErr, ErrOverCapacity) &&
				errors.Is(flowErr, ErrOverCapacity)
		},
		gen.Float64Range(0.001, 10),
	))

	properties.Property("depth grows with flow rate", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			dLo, errLo := DepthFromFlowRate(0.3, 1, lo)
			dHi, errHi := DepthFromFlowRate(0.3, 1, hi)
			return errLo == nil && errHi == nil && dLo <= dHi+1e-12
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.Property("turbulent friction factor is positive and finite", prop.ForAll(
		func(re, relativeRoughness float64) bool {
			result, err := FrictionFactor(re, 1, relativeRoughness)
			return err == nil && result.Iterations == 4 && result.Factor > 0 && result.Factor < 1
		},
		gen.Float64Range(TurbulentLimit, 1e8),
		gen.Float64Range(0, 0.05),
	))

	properties.TestingRun(t)
}
