package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection records where a ray crosses the surface of an object
type Intersection struct {
	T      float64 // Parameter t along the ray
	Object *Object // Leaf object that was struck
	U, V   float64 // Barycentric coordinates, set for triangles

	toObject core.Matrix // Composed world -> object matrix of Object
}

// NewIntersection creates an intersection for obj at parameter t
func NewIntersection(t float64, obj *Object) Intersection {
	return Intersection{T: t, Object: obj, toObject: obj.worldToObjectChain()}
}

// NewIntersectionUV creates an intersection carrying barycentric coordinates
func NewIntersectionUV(t float64, obj *Object, u, v float64) Intersection {
	i := NewIntersection(t, obj)
	i.U, i.V = u, v
	return i
}

// ToObject returns the matrix taking world-space points into the
// struck object's space, including every enclosing group.
func (i Intersection) ToObject() core.Matrix {
	if i.toObject.Size() == 0 {
		if i.Object == nil {
			return core.Identity()
		}
		return i.Object.worldToObjectChain()
	}
	return i.toObject
}

// NormalAt returns the world-space surface normal at a world point
func (i Intersection) NormalAt(worldPoint core.Tuple4) core.Tuple4 {
	return i.Object.NormalAt(worldPoint, i)
}

// Hit returns the intersection with the lowest non-negative t.
// The slice does not need to be sorted.
func Hit(xs []Intersection) (Intersection, bool) {
	best := -1
	for i := range xs {
		if xs[i].T < 0 {
			continue
		}
		if best < 0 || xs[i].T < xs[best].T {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}

// SortIntersections orders intersections by ascending t, keeping the
// solver order for equal values.
func SortIntersections(xs []Intersection) {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}
