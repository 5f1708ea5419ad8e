package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RadialLight is a point light radiating equally in every direction
type RadialLight struct {
	Position  core.Tuple4 // World-space position
	Intensity core.Color  // Emitted color and brightness
}

// NewRadialLight creates a point light at position
func NewRadialLight(position core.Tuple4, intensity core.Color) RadialLight {
	return RadialLight{Position: position, Intensity: intensity}
}

// Toward returns the unit direction from point to the light and the distance
// between them
func (l RadialLight) Toward(point core.Tuple4) (direction core.Tuple4, distance float64) {
	v := l.Position.Subtract(point)
	distance = v.Magnitude()
	return v.Normalize(), distance
}
