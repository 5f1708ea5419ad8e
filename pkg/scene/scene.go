package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// World contains all the elements needed for shading: lights and the
// top-level objects. It is read-only while rendering.
type World struct {
	Lights  []lights.RadialLight
	Objects []*geometry.Object
}

// NewWorld creates a world from lights and top-level objects. Objects must
// be valid and must not already belong to a group.
func NewWorld(lightList []lights.RadialLight, objects []*geometry.Object) (*World, error) {
	w := &World{Lights: append([]lights.RadialLight(nil), lightList...)}
	for _, o := range objects {
		if err := w.AddObject(o); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// AddObject appends a top-level object
func (w *World) AddObject(o *geometry.Object) error {
	if o == nil {
		return fmt.Errorf("world object %d: %w", len(w.Objects), geometry.ErrNilObject)
	}
	if o.Parent() != nil {
		return fmt.Errorf("world object %d: %w", len(w.Objects), geometry.ErrAlreadyGrouped)
	}
	if err := o.Validate(); err != nil {
		return fmt.Errorf("world object %d: %w", len(w.Objects), err)
	}
	w.Objects = append(w.Objects, o)
	return nil
}

// AddLight appends a light
func (w *World) AddLight(l lights.RadialLight) {
	w.Lights = append(w.Lights, l)
}

// Intersect returns every intersection of the ray with the world's objects,
// sorted by ascending t
func (w *World) Intersect(ray core.Ray) []geometry.Intersection {
	var xs []geometry.Intersection
	for _, o := range w.Objects {
		xs = o.AppendIntersections(ray, xs)
	}
	geometry.SortIntersections(xs)
	return xs
}

// Partition replaces the objects with a single group built by
// geometry.BinaryPartition
func (w *World) Partition(depth int) error {
	root, err := geometry.BinaryPartition(depth, w.Objects)
	if err != nil {
		return fmt.Errorf("partition world: %w", err)
	}
	w.Objects = []*geometry.Object{root}
	return nil
}

// GetPrimitiveCount returns the number of leaf objects in the world
func (w *World) GetPrimitiveCount() int {
	count := 0
	for _, o := range w.Objects {
		count += countPrimitives(o)
	}
	return count
}

func countPrimitives(o *geometry.Object) int {
	if !o.IsGroup() {
		return 1
	}
	count := 0
	for _, child := range o.Children() {
		count += countPrimitives(child)
	}
	return count
}
