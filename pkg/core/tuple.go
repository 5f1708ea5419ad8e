package core

import "math"

// Epsilon is the tolerance used for approximate comparisons and for
// nudging shading points off a surface.
const Epsilon = 1e-5

// Tuple4 is a homogeneous coordinate. W is 1 for points and 0 for vectors.
type Tuple4 struct {
	X, Y, Z, W float64
}

// Point creates a point (w=1)
func Point(x, y, z float64) Tuple4 {
	return Tuple4{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a vector (w=0)
func Vector(x, y, z float64) Tuple4 {
	return Tuple4{X: x, Y: y, Z: z, W: 0}
}

// IsPoint reports whether the tuple is a point
func (t Tuple4) IsPoint() bool {
	return FloatEqual(t.W, 1)
}

// IsVector reports whether the tuple is a vector
func (t Tuple4) IsVector() bool {
	return FloatEqual(t.W, 0)
}

// Add returns the sum of two tuples
func (t Tuple4) Add(other Tuple4) Tuple4 {
	return Tuple4{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the difference of two tuples
func (t Tuple4) Subtract(other Tuple4) Tuple4 {
	return Tuple4{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the tuple with every component negated
func (t Tuple4) Negate() Tuple4 {
	return Tuple4{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple4) Multiply(scalar float64) Tuple4 {
	return Tuple4{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide returns the tuple divided by a scalar
func (t Tuple4) Divide(scalar float64) Tuple4 {
	return Tuple4{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Magnitude returns the length of the tuple
func (t Tuple4) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize returns a unit tuple in the same direction.
// The zero tuple normalizes to itself.
func (t Tuple4) Normalize() Tuple4 {
	m := t.Magnitude()
	if m == 0 {
		return t
	}
	return t.Divide(m)
}

// Dot returns the four-component dot product
func (t Tuple4) Dot(other Tuple4) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors. The result is always a vector.
func (t Tuple4) Cross(other Tuple4) Tuple4 {
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// Min returns the componentwise minimum
func (t Tuple4) Min(other Tuple4) Tuple4 {
	return Tuple4{
		X: math.Min(t.X, other.X),
		Y: math.Min(t.Y, other.Y),
		Z: math.Min(t.Z, other.Z),
		W: math.Min(t.W, other.W),
	}
}

// Max returns the componentwise maximum
func (t Tuple4) Max(other Tuple4) Tuple4 {
	return Tuple4{
		X: math.Max(t.X, other.X),
		Y: math.Max(t.Y, other.Y),
		Z: math.Max(t.Z, other.Z),
		W: math.Max(t.W, other.W),
	}
}

// Reflect reflects the vector about the given normal
func (t Tuple4) Reflect(normal Tuple4) Tuple4 {
	return t.Subtract(normal.Multiply(2 * t.Dot(normal)))
}

// Component returns the value along an axis (0=X, 1=Y, 2=Z, 3=W)
func (t Tuple4) Component(axis int) float64 {
	switch axis {
	case 0:
		return t.X
	case 1:
		return t.Y
	case 2:
		return t.Z
	default:
		return t.W
	}
}

// ApproxEqual compares two tuples componentwise within Epsilon
func (t Tuple4) ApproxEqual(other Tuple4) bool {
	return FloatEqual(t.X, other.X) &&
		FloatEqual(t.Y, other.Y) &&
		FloatEqual(t.Z, other.Z) &&
		FloatEqual(t.W, other.W)
}

// FloatEqual compares two floats within Epsilon. Equal infinities compare equal.
func FloatEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < Epsilon
}
