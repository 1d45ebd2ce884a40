package hydraulics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

func TestReynoldsReferencePipe(t *testing.T) {
	g := referenceGeometry(t)
	water := catalog.Water.Properties()

	v, err := FullVelocity(g, water)
	require.NoError(t, err)

	re, err := Reynolds(v, g.Dimension, water.KinematicViscosity)
	require.NoError(t, err)
	assert.Equal(t, 209119.0, math.Round(re))
}

func TestFrictionFactorTurbulent(t *testing.T) {
	g := referenceGeometry(t)
	water := catalog.Water.Properties()

	v, err := FullVelocity(g, water)
	require.NoError(t, err)
	re, err := Reynolds(v, g.Dimension, water.KinematicViscosity)
	require.NoError(t, err)

	result, err := FrictionFactor(re, g.Dimension, g.Roughness())
	require.NoError(t, err)
	assert.Equal(t, Turbulent, result.Regime)
	assert.Equal(t, 4, result.Iterations)
	assert.Equal(t, 0.0298, round(result.Factor, 4))
}

func TestFrictionFactorLaminar(t *testing.T) {
	for _, re := range []float64{1, 500, 1728.5, LaminarLimit} {
		result, err := FrictionFactor(re, 0.2, catalog.Plastic.Roughness())
		require.NoError(t, err)
		assert.Equal(t, Laminar, result.Regime)
		assert.Equal(t, 0, result.Iterations, "Newton solver must not run for laminar flow")
		assert.InDelta(t, 64/re, result.Factor, 1e-15)
	}
}

func TestFrictionFactorTransitional(t *testing.T) {
	for _, re := range []float64{2300.0001, 3000, 3999.999} {
		result, err := FrictionFactor(re, 0.2, catalog.Plastic.Roughness())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUndefinedFrictionFactor)
		assert.Equal(t, Transitional, result.Regime)
		assert.Zero(t, result.Factor)
	}
}

func TestFrictionFactorAtTurbulentLimit(t *testing.T) {
	result, err := FrictionFactor(TurbulentLimit, 0.2, catalog.Plastic.Roughness())
	require.NoError(t, err)
	assert.Equal(t, Turbulent, result.Regime)
	assert.Greater(t, result.Factor, 0.0)
}

func TestFrictionFactorNoFlow(t *testing.T) {
	_, err := FrictionFactor(0, 0.2, 0.001)
	assert.ErrorIs(t, err, ErrUndefinedFrictionFactor)

	_, err = FrictionFactor(math.NaN(), 0.2, 0.001)
	assert.ErrorIs(t, err, ErrUndefinedFrictionFactor)
}

func TestFrictionFactorSmoothPipe(t *testing.T) {
	// Hydraulically smooth pipe at Re = 1e5 sits near 0.018 on the Moody chart
	result, err := FrictionFactor(1e5, 0.1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.018, result.Factor, 0.001)
}

func TestSolveColebrookDivergence(t *testing.T) {
	// A negative relative roughness has no real Haaland seed
	_, steps, err := solveColebrook(1e6, -1)
	assert.ErrorIs(t, err, ErrNumericDivergence)
	assert.Zero(t, steps)
}

func TestReynoldsErrors(t *testing.T) {
	_, err := Reynolds(1, 0, 1e-6)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Reynolds(1, 0.2, 0)
	assert.ErrorIs(t, err, ErrInvalidFluid)
}

func TestClassifyRegime(t *testing.T) {
	assert.Equal(t, Laminar, ClassifyRegime(2300))
	assert.Equal(t, Transitional, ClassifyRegime(2301))
	assert.Equal(t, Turbulent, ClassifyRegime(4000))
	assert.Equal(t, "transitional", Transitional.String())
}
