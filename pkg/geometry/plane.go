package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane (y = 0) in object space
type Plane struct{}

func (p *Plane) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	// Parallel or coplanar rays never cross the plane
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return xs
	}
	t := -ray.Origin.Y / ray.Direction.Y
	return appendHit(xs, t, owner, toObject)
}

func (p *Plane) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	return core.Vector(0, 1, 0)
}

func (p *Plane) localBounds() core.Bounds {
	inf := math.Inf(1)
	return core.NewBounds(core.Point(-inf, 0, -inf), core.Point(inf, 0, inf))
}
