package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CylinderKind selects whether a cylinder's ends are capped
type CylinderKind int

const (
	// Open cylinders are hollow tubes
	Open CylinderKind = iota
	// Closed cylinders have solid discs at both ends
	Closed
)

// String returns the kind name used in scene files
func (k CylinderKind) String() string {
	if k == Closed {
		return "closed"
	}
	return "open"
}

// Cylinder is a unit-radius cylinder around the object-space y axis,
// truncated to Minimum < y < Maximum.
type Cylinder struct {
	Kind    CylinderKind
	Minimum float64
	Maximum float64
}

func (c *Cylinder) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	// Quadratic on the xz projection: at² + bt + cc = 0
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	// A ray parallel to the y axis can only hit the caps
	if math.Abs(a) >= core.Epsilon {
		b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return xs
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		// Keep only the side hits within the height bounds
		if y0 := ray.Origin.Y + t0*ray.Direction.Y; c.Minimum < y0 && y0 < c.Maximum {
			xs = appendHit(xs, t0, owner, toObject)
		}
		if y1 := ray.Origin.Y + t1*ray.Direction.Y; c.Minimum < y1 && y1 < c.Maximum {
			xs = appendHit(xs, t1, owner, toObject)
		}
	}

	return c.intersectCaps(ray, owner, toObject, xs)
}

// intersectCaps checks the end discs of a closed cylinder
func (c *Cylinder) intersectCaps(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	// Caps only matter when closed and the ray is not parallel to them
	if c.Kind != Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}

	for _, capY := range [2]float64{c.Minimum, c.Maximum} {
		if math.IsInf(capY, 0) {
			continue
		}
		t := (capY - ray.Origin.Y) / ray.Direction.Y
		if withinCap(ray, t) {
			xs = appendHit(xs, t, owner, toObject)
		}
	}
	return xs
}

// withinCap reports whether the ray at t lies within the unit radius
func withinCap(ray core.Ray, t float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= 1
}

func (c *Cylinder) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	dist := point.X*point.X + point.Z*point.Z

	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}
	return core.Vector(point.X, 0, point.Z)
}

func (c *Cylinder) localBounds() core.Bounds {
	return core.NewBounds(core.Point(-1, c.Minimum, -1), core.Point(1, c.Maximum, 1))
}
