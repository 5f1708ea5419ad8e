package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the unit sphere centered at the object-space origin
type Sphere struct{}

func (s *Sphere) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Subtract(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return xs
	}

	sqrtD := math.Sqrt(discriminant)
	xs = appendHit(xs, (-b-sqrtD)/(2*a), owner, toObject)
	return appendHit(xs, (-b+sqrtD)/(2*a), owner, toObject)
}

func (s *Sphere) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	return point.Subtract(core.Point(0, 0, 0))
}

func (s *Sphere) localBounds() core.Bounds {
	return core.NewBounds(core.Point(-1, -1, -1), core.Point(1, 1, 1))
}
