package core

import "math"

// Translation returns a matrix that moves points by (x, y, z). Vectors are unaffected.
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m.m[0][3] = x
	m.m[1][3] = y
	m.m[2][3] = z
	return m
}

// Scaling returns a matrix that scales along each axis
func Scaling(x, y, z float64) Matrix {
	m := Identity()
	m.m[0][0] = x
	m.m[1][1] = y
	m.m[2][2] = z
	return m
}

// RotationX rotates around the x axis by radians
func RotationX(radians float64) Matrix {
	cos, sin := math.Cos(radians), math.Sin(radians)
	m := Identity()
	m.m[1][1] = cos
	m.m[1][2] = -sin
	m.m[2][1] = sin
	m.m[2][2] = cos
	return m
}

// RotationY rotates around the y axis by radians
func RotationY(radians float64) Matrix {
	cos, sin := math.Cos(radians), math.Sin(radians)
	m := Identity()
	m.m[0][0] = cos
	m.m[0][2] = sin
	m.m[2][0] = -sin
	m.m[2][2] = cos
	return m
}

// RotationZ rotates around the z axis by radians
func RotationZ(radians float64) Matrix {
	cos, sin := math.Cos(radians), math.Sin(radians)
	m := Identity()
	m.m[0][0] = cos
	m.m[0][1] = -sin
	m.m[1][0] = sin
	m.m[1][1] = cos
	return m
}

// Shearing moves each component in proportion to the other two.
// xy is "x moved in proportion to y", and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	m := Identity()
	m.m[0][1] = xy
	m.m[0][2] = xz
	m.m[1][0] = yx
	m.m[1][2] = yz
	m.m[2][0] = zx
	m.m[2][1] = zy
	return m
}

// Chain composes transforms so that the first argument is applied first.
// Chain(a, b, c) == c * b * a.
func Chain(transforms ...Matrix) Matrix {
	result := Identity()
	for _, t := range transforms {
		result = t.Multiply(result)
	}
	return result
}

// ViewTransform orients the world relative to an eye at from looking at to.
func ViewTransform(from, to, up Tuple4) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := NewMatrix(
		[]float64{left.X, left.Y, left.Z, 0},
		[]float64{trueUp.X, trueUp.Y, trueUp.Z, 0},
		[]float64{-forward.X, -forward.Y, -forward.Z, 0},
		[]float64{0, 0, 0, 1},
	)
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
