package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Shape is the geometry held by an Object. The set of shapes is closed:
// Sphere, Plane, Cube, Cylinder, Triangle, SmoothTriangle and Group.
// Every method works in the shape's own object space.
type Shape interface {
	// localIntersect appends the intersections of an object-space ray.
	// owner is the Object wrapping this shape and toObject the composed
	// world-to-object matrix recorded on every appended intersection.
	localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection

	// localNormalAt returns the object-space normal at an object-space point
	localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4

	// localBounds returns the object-space bounding box
	localBounds() core.Bounds
}

// appendHit records an intersection of owner at parameter t
func appendHit(xs []Intersection, t float64, owner *Object, toObject core.Matrix) []Intersection {
	return append(xs, Intersection{T: t, Object: owner, toObject: toObject})
}
