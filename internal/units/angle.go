package units

import "math"

// Radians converts an angle in degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Degrees converts an angle in radians to degrees.
func Degrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}
