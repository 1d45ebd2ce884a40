package catalog

import (
	"fmt"
	"strings"
)

// FluidProperties holds the properties the solver needs from a fluid
type FluidProperties struct {
	Name               string
	KinematicViscosity float64 // ν (m²/s)
	Density            float64 // ρ (kg/m³)
}

// Validate checks that both properties are physically meaningful
func (p FluidProperties) Validate() error {
	if p.KinematicViscosity <= 0 {
		return fmt.Errorf("kinematic viscosity must be positive, got %g m²/s", p.KinematicViscosity)
	}
	if p.Density <= 0 {
		return fmt.Errorf("density must be positive, got %g kg/m³", p.Density)
	}
	return nil
}

// CustomFluid builds fluid properties that are supplied directly
// rather than taken from the catalogue.
func CustomFluid(kinematicViscosity, density float64) FluidProperties {
	return FluidProperties{
		Name:               "custom",
		KinematicViscosity: kinematicViscosity,
		Density:            density,
	}
}

// Fluid is a catalogued fluid
type Fluid int

const (
	Water Fluid = iota
	Seawater
	Air
	LightOil
	HeavyOil
)

// Reference properties at about 10 °C and atmospheric pressure
var fluidTable = []FluidProperties{
	Water:    {Name: "water", KinematicViscosity: 1.31e-6, Density: 999.7},
	Seawater: {Name: "seawater", KinematicViscosity: 1.35e-6, Density: 1027.0},
	Air:      {Name: "air", KinematicViscosity: 1.42e-5, Density: 1.247},
	LightOil: {Name: "light-oil", KinematicViscosity: 1.0e-4, Density: 870.0},
	HeavyOil: {Name: "heavy-oil", KinematicViscosity: 4.4e-4, Density: 891.0},
}

// Properties returns the catalogue properties of the fluid.
// An unknown fluid returns zero properties, which fail Validate.
func (f Fluid) Properties() FluidProperties {
	if f < 0 || int(f) >= len(fluidTable) {
		return FluidProperties{}
	}
	return fluidTable[f]
}

func (f Fluid) String() string {
	if p := f.Properties(); p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("fluid(%d)", int(f))
}

// Fluids lists every catalogued fluid in declaration order
func Fluids() []Fluid {
	fluids := make([]Fluid, len(fluidTable))
	for i := range fluidTable {
		fluids[i] = Fluid(i)
	}
	return fluids
}

// ParseFluid looks up a fluid by its catalogue name (case-insensitive)
func ParseFluid(name string) (Fluid, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fluids() {
		if f.String() == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown fluid %q", name)
}
