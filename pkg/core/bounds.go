package core

import "math"

// Bounds represents an axis-aligned bounding box. Min and Max are points.
type Bounds struct {
	Min Tuple4 // Minimum corner
	Max Tuple4 // Maximum corner
}

// NewBounds creates bounds from two opposite corners in any order
func NewBounds(a, b Tuple4) Bounds {
	lo, hi := a.Min(b), a.Max(b)
	lo.W, hi.W = 1, 1
	return Bounds{Min: lo, Max: hi}
}

// NewBoundsFromPoints creates the smallest bounds containing all given points
func NewBoundsFromPoints(points ...Tuple4) Bounds {
	b := EmptyBounds()
	for _, p := range points {
		b = b.EnclosePoint(p)
	}
	return b
}

// EmptyBounds returns bounds that contain nothing. Enclosing anything
// into it yields that thing's bounds.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Point(inf, inf, inf),
		Max: Point(-inf, -inf, -inf),
	}
}

// InfiniteBounds returns bounds covering all of space
func InfiniteBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Point(-inf, -inf, -inf),
		Max: Point(inf, inf, inf),
	}
}

// IsEmpty reports whether the bounds contain no points
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// IsFinite reports whether every corner component is finite
func (b Bounds) IsFinite() bool {
	for axis := 0; axis < 3; axis++ {
		if math.IsInf(b.Min.Component(axis), 0) || math.IsInf(b.Max.Component(axis), 0) {
			return false
		}
	}
	return true
}

// EnclosePoint returns bounds grown to include p
func (b Bounds) EnclosePoint(p Tuple4) Bounds {
	lo, hi := b.Min.Min(p), b.Max.Max(p)
	lo.W, hi.W = 1, 1
	return Bounds{Min: lo, Max: hi}
}

// Enclose returns bounds that contain both b and other
func (b Bounds) Enclose(other Bounds) Bounds {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return b.EnclosePoint(other.Min).EnclosePoint(other.Max)
}

// EncloseAll returns the union of all given bounds
func EncloseAll(bounds ...Bounds) Bounds {
	result := EmptyBounds()
	for _, b := range bounds {
		result = result.Enclose(b)
	}
	return result
}

// ContainsPoint reports whether p lies inside b, inclusive of the faces
func (b Bounds) ContainsPoint(p Tuple4) bool {
	return b.Min.X <= p.X && p.X <= b.Max.X &&
		b.Min.Y <= p.Y && p.Y <= b.Max.Y &&
		b.Min.Z <= p.Z && p.Z <= b.Max.Z
}

// Contains reports whether other lies entirely inside b, inclusive of the faces.
// Empty bounds are contained by everything.
func (b Bounds) Contains(other Bounds) bool {
	if other.IsEmpty() {
		return true
	}
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Transform returns the axis-aligned bounds of the box after applying an
// affine transform. Each output extent is accumulated per matrix element,
// so infinite extents stay infinite instead of turning into NaN.
func (b Bounds) Transform(m Matrix) Bounds {
	if b.IsEmpty() {
		return b
	}

	var lo, hi [3]float64
	for i := 0; i < 3; i++ {
		lo[i] = m.m[i][3]
		hi[i] = m.m[i][3]
		for j := 0; j < 3; j++ {
			factor := m.m[i][j]
			if factor == 0 {
				continue
			}
			a := factor * b.Min.Component(j)
			c := factor * b.Max.Component(j)
			lo[i] += math.Min(a, c)
			hi[i] += math.Max(a, c)
		}
	}
	return Bounds{Min: Point(lo[0], lo[1], lo[2]), Max: Point(hi[0], hi[1], hi[2])}
}

// Center returns the midpoint of the bounds
func (b Bounds) Center() Tuple4 {
	return Point(
		(b.Min.X+b.Max.X)/2,
		(b.Min.Y+b.Max.Y)/2,
		(b.Min.Z+b.Max.Z)/2,
	)
}

// Size returns the extent of the bounds along each axis
func (b Bounds) Size() Tuple4 {
	return b.Max.Subtract(b.Min)
}

// Octants splits the bounds at its center into eight equal cells.
// Bit 0 of the index selects the upper x half, bit 1 the upper y half
// and bit 2 the upper z half.
func (b Bounds) Octants() [8]Bounds {
	mid := b.Center()
	var cells [8]Bounds
	for i := 0; i < 8; i++ {
		lo, hi := b.Min, mid
		if i&1 != 0 {
			lo.X, hi.X = mid.X, b.Max.X
		}
		if i&2 != 0 {
			lo.Y, hi.Y = mid.Y, b.Max.Y
		}
		if i&4 != 0 {
			lo.Z, hi.Z = mid.Z, b.Max.Z
		}
		cells[i] = Bounds{Min: lo, Max: hi}
	}
	return cells
}

// SlabIntersect returns the entry and exit parameters of the ray against
// the box. The ray misses when tmin > tmax.
func (b Bounds) SlabIntersect(ray Ray) (tmin, tmax float64) {
	xmin, xmax := checkAxis(ray.Origin.X, ray.Direction.X, b.Min.X, b.Max.X)
	ymin, ymax := checkAxis(ray.Origin.Y, ray.Direction.Y, b.Min.Y, b.Max.Y)
	zmin, zmax := checkAxis(ray.Origin.Z, ray.Direction.Z, b.Min.Z, b.Max.Z)

	tmin = math.Max(xmin, math.Max(ymin, zmin))
	tmax = math.Min(xmax, math.Min(ymax, zmax))
	return tmin, tmax
}

// Intersects reports whether the ray's line passes through the box
func (b Bounds) Intersects(ray Ray) bool {
	if b.IsEmpty() {
		return false
	}
	tmin, tmax := b.SlabIntersect(ray)
	return tmin <= tmax
}

// checkAxis intersects one slab. Direction components below Epsilon are
// treated as parallel to the slab, producing infinite extents.
func checkAxis(origin, direction, min, max float64) (float64, float64) {
	minNumerator := min - origin
	maxNumerator := max - origin

	var tmin, tmax float64
	if math.Abs(direction) >= Epsilon {
		tmin = minNumerator / direction
		tmax = maxNumerator / direction
	} else {
		tmin = parallelExtent(minNumerator, -1)
		tmax = parallelExtent(maxNumerator, 1)
	}

	if tmin > tmax {
		tmin, tmax = tmax, tmin
	}
	return tmin, tmax
}

// parallelExtent maps a slab distance to an infinite parameter. A zero
// distance means the origin lies on the face, which counts as inside.
func parallelExtent(numerator float64, onFace int) float64 {
	switch {
	case numerator > 0:
		return math.Inf(1)
	case numerator < 0:
		return math.Inf(-1)
	default:
		return math.Inf(onFace)
	}
}
