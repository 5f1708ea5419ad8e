package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern provides spatially-varying colors for materials.
// ColorAt receives a point already expressed in pattern space.
type Pattern interface {
	ColorAt(point core.Tuple4) core.Color
}

// Solid provides a uniform color
type Solid struct {
	Color core.Color
}

// NewSolid creates a new solid color pattern
func NewSolid(color core.Color) Solid {
	return Solid{Color: color}
}

// ColorAt returns the solid color regardless of position
func (s Solid) ColorAt(point core.Tuple4) core.Color {
	return s.Color
}
