package hydraulics

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/goflow/internal/catalog"
)

// Shape is the cross-sectional shape of a pipe
type Shape int

const (
	ShapeCircular Shape = iota
)

func (s Shape) String() string {
	switch s {
	case ShapeCircular:
		return "circular"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Geometry describes a single gravity pipe
type Geometry struct {
	Material catalog.Material

	// Dimensions (m)
	Dimension float64 // D - inner diameter for circular pipes
	Length    float64 // L - pipe length, 0 when unknown

	// Hydraulic gradient / friction slope (m/m)
	Gradient float64

	Shape Shape
}

// NewGeometry creates a circular pipe where the friction slope is known
func NewGeometry(material catalog.Material, dimension, gradient float64) (Geometry, error) {
	g := Geometry{
		Material:  material,
		Dimension: dimension,
		Gradient:  gradient,
		Shape:     ShapeCircular,
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// NewGeometryFromLevels creates a circular pipe whose friction slope is
// derived from the invert levels at both ends: S = |z1 - z2| / L.
func NewGeometryFromLevels(material catalog.Material, dimension, z1, z2, length float64) (Geometry, error) {
	if length <= 0 {
		return Geometry{}, fmt.Errorf("%w: length must be positive to derive a gradient, got %g m", ErrInvalidGeometry, length)
	}
	g := Geometry{
		Material:  material,
		Dimension: dimension,
		Length:    length,
		Gradient:  math.Abs(z1-z2) / length,
		Shape:     ShapeCircular,
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate checks the geometry invariants
func (g Geometry) Validate() error {
	if g.Shape != ShapeCircular {
		return fmt.Errorf("%w: unsupported shape %s", ErrInvalidGeometry, g.Shape)
	}
	if !(g.Dimension > 0) || math.IsInf(g.Dimension, 0) {
		return fmt.Errorf("%w: dimension must be positive, got %g m", ErrInvalidGeometry, g.Dimension)
	}
	if !(g.Gradient >= 0) || math.IsInf(g.Gradient, 0) {
		return fmt.Errorf("%w: gradient must be non-negative, got %g", ErrInvalidGeometry, g.Gradient)
	}
	if g.Length < 0 {
		return fmt.Errorf("%w: length must not be negative, got %g m", ErrInvalidGeometry, g.Length)
	}
	return nil
}

// Roughness returns the absolute wall roughness k (m) of the pipe material
func (g Geometry) Roughness() float64 {
	return g.Material.Roughness()
}

// FullArea returns the cross-sectional area of the completely filled pipe (m²)
func (g Geometry) FullArea() (float64, error) {
	switch g.Shape {
	case ShapeCircular:
		return math.Pi * g.Dimension * g.Dimension / 4, nil
	default:
		return 0, fmt.Errorf("%w: unsupported shape %s", ErrInvalidGeometry, g.Shape)
	}
}
