package catalog

import (
	"fmt"
	"strings"
)

// Physical constants

const (
	// GravitationalAcceleration used throughout the solver (m/s²)
	GravitationalAcceleration = 9.82
)

// Material is a pipe wall material with an associated absolute roughness.
type Material int

const (
	Concrete Material = iota
	Plastic
	CastIron
	Steel
	VitrifiedClay
)

// materialTable holds name and absolute roughness k (m) per material
var materialTable = map[Material]struct {
	name      string
	roughness float64
}{
	Concrete:      {"concrete", 0.001},
	Plastic:       {"plastic", 0.0002},
	CastIron:      {"cast-iron", 0.00026},
	Steel:         {"steel", 0.000045},
	VitrifiedClay: {"vitrified-clay", 0.0003},
}

// Roughness returns the absolute wall roughness in meters.
// Unknown materials report zero roughness (hydraulically smooth).
func (m Material) Roughness() float64 {
	return materialTable[m].roughness
}

func (m Material) String() string {
	if entry, ok := materialTable[m]; ok {
		return entry.name
	}
	return fmt.Sprintf("material(%d)", int(m))
}

// Materials lists every catalogued material in declaration order
func Materials() []Material {
	return []Material{Concrete, Plastic, CastIron, Steel, VitrifiedClay}
}

// ParseMaterial looks up a material by its catalogue name (case-insensitive)
func ParseMaterial(name string) (Material, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Materials() {
		if m.String() == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown pipe material %q", name)
}
