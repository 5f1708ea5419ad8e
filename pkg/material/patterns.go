package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Stripes alternates between A and B along the x axis, one unit per band
type Stripes struct {
	A, B core.Color
}

// NewStripes creates a stripe pattern
func NewStripes(a, b core.Color) Stripes {
	return Stripes{A: a, B: b}
}

// ColorAt returns A on even x bands and B on odd ones
func (s Stripes) ColorAt(point core.Tuple4) core.Color {
	if isEven(math.Floor(point.X)) {
		return s.A
	}
	return s.B
}

// Rings alternates between A and B in concentric rings around the y axis
type Rings struct {
	A, B core.Color
}

// NewRings creates a ring pattern
func NewRings(a, b core.Color) Rings {
	return Rings{A: a, B: b}
}

// ColorAt picks a color by the integer distance from the y axis
func (r Rings) ColorAt(point core.Tuple4) core.Color {
	distance := math.Sqrt(point.X*point.X + point.Z*point.Z)
	if isEven(math.Floor(distance)) {
		return r.A
	}
	return r.B
}

// Gradient blends linearly from A to B along x, repeating every unit
type Gradient struct {
	A, B core.Color
}

// NewGradient creates a gradient pattern
func NewGradient(a, b core.Color) Gradient {
	return Gradient{A: a, B: b}
}

// ColorAt interpolates by the fractional part of x
func (g Gradient) ColorAt(point core.Tuple4) core.Color {
	fraction := point.X - math.Floor(point.X)
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// Checkers alternates between A and B in unit cubes
type Checkers struct {
	A, B core.Color
}

// NewCheckers creates a 3D checker pattern
func NewCheckers(a, b core.Color) Checkers {
	return Checkers{A: a, B: b}
}

// ColorAt returns A when the sum of the floored coordinates is even
func (c Checkers) ColorAt(point core.Tuple4) core.Color {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	if isEven(sum) {
		return c.A
	}
	return c.B
}

func isEven(v float64) bool {
	return math.Mod(v, 2) == 0
}
