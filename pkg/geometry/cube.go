package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned box spanning -1..1 on every object-space axis
type Cube struct{}

var unitCube = core.NewBounds(core.Point(-1, -1, -1), core.Point(1, 1, 1))

func (c *Cube) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	tmin, tmax := unitCube.SlabIntersect(ray)
	if tmin > tmax {
		return xs
	}
	xs = appendHit(xs, tmin, owner, toObject)
	return appendHit(xs, tmax, owner, toObject)
}

// localNormalAt picks the face by the component with the largest magnitude.
// Ties on edges and corners resolve in x, y, z order.
func (c *Cube) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.Vector(point.X, 0, 0)
	case ay:
		return core.Vector(0, point.Y, 0)
	default:
		return core.Vector(0, 0, point.Z)
	}
}

func (c *Cube) localBounds() core.Bounds {
	return unitCube
}
