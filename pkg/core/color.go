package core

import "math"

// Color is a linear RGB triple. Components are unbounded above;
// clamping happens only when encoding to an output format.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Hadamard returns the componentwise product of two colors
func (c Color) Hadamard(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a color with components clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// ApproxEqual compares two colors componentwise within Epsilon
func (c Color) ApproxEqual(other Color) bool {
	return FloatEqual(c.R, other.R) && FloatEqual(c.G, other.G) && FloatEqual(c.B, other.B)
}

// ToByte converts a single channel to 0..255 by clamping and rounding
func ToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// RGB8 returns the color as clamped, rounded 8-bit channels
func (c Color) RGB8() (r, g, b uint8) {
	return ToByte(c.R), ToByte(c.G), ToByte(c.B)
}
