package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Group is a composite shape whose children live in the group's object space
type Group struct {
	children []*Object
	bounds   core.Bounds // Union of the children's bounds in group space
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.children)
}

func (g *Group) recomputeBounds() {
	b := core.EmptyBounds()
	for _, child := range g.children {
		b = b.Enclose(child.Bounds())
	}
	g.bounds = b
}

func (g *Group) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	// Skip every child when the ray misses the combined box. Hits behind the
	// origin are kept so refraction can track the containing objects.
	if !g.bounds.Intersects(ray) {
		return xs
	}
	for _, child := range g.children {
		xs = child.appendIntersections(ray, toObject, xs)
	}
	return xs
}

// localNormalAt is never called: intersections always name a leaf object
func (g *Group) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	panic("geometry: normal requested for a group")
}

func (g *Group) localBounds() core.Bounds {
	return g.bounds
}
