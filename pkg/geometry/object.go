package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// ErrDegenerateTriangle is returned for triangles whose vertices are collinear
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrGroupCycle is returned when a group would end up containing itself
	ErrGroupCycle = errors.New("group cannot contain itself")
	// ErrAlreadyGrouped is returned when adding an object that already has a parent
	ErrAlreadyGrouped = errors.New("object already belongs to a group")
	// ErrNotGroup is returned when a group operation targets a non-group object
	ErrNotGroup = errors.New("object is not a group")
	// ErrNilObject is returned when a nil object is passed where one is required
	ErrNilObject = errors.New("nil object")
)

// Object places a shape in its parent's space with a transform and a material.
// Objects form a tree: a group owns its children and each child has at most
// one parent.
type Object struct {
	shape    Shape
	material material.Material

	// worldToObject is cached because every intersection test needs it;
	// objectToWorld is kept in sync so ObjectToWorld never inverts.
	worldToObject core.Matrix
	objectToWorld core.Matrix

	parent *Object
	err    error
}

func newObject(shape Shape) *Object {
	return &Object{
		shape:         shape,
		material:      material.Default(),
		worldToObject: core.Identity(),
		objectToWorld: core.Identity(),
	}
}

// NewSphere creates a unit sphere centered at the origin
func NewSphere() *Object {
	return newObject(&Sphere{})
}

// NewGlassSphere creates a unit sphere with a glass material
func NewGlassSphere() *Object {
	return newObject(&Sphere{}).WithMaterial(material.NewGlass())
}

// NewPlane creates the infinite xz plane
func NewPlane() *Object {
	return newObject(&Plane{})
}

// NewCube creates an axis-aligned cube spanning -1..1 on every axis
func NewCube() *Object {
	return newObject(&Cube{})
}

// NewCylinder creates a unit-radius cylinder around the y axis, truncated
// to minimum < y < maximum. Use math.Inf for an unbounded cylinder.
func NewCylinder(kind CylinderKind, minimum, maximum float64) *Object {
	if minimum > maximum {
		minimum, maximum = maximum, minimum
	}
	return newObject(&Cylinder{Kind: kind, Minimum: minimum, Maximum: maximum})
}

// NewTriangle creates a flat triangle. Collinear vertices are rejected.
func NewTriangle(p1, p2, p3 core.Tuple4) (*Object, error) {
	tri, err := newTriangle(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	return newObject(tri), nil
}

// NewSmoothTriangle creates a triangle whose normal is interpolated from
// per-vertex normals.
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple4) (*Object, error) {
	tri, err := newTriangle(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	return newObject(&SmoothTriangle{Triangle: *tri, N1: n1, N2: n2, N3: n3}), nil
}

// NewGroup creates a group owning the given children
func NewGroup(children ...*Object) (*Object, error) {
	g := newObject(&Group{bounds: core.EmptyBounds()})
	for _, child := range children {
		if err := g.AddChild(child); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Shape returns the underlying shape
func (o *Object) Shape() Shape {
	return o.shape
}

// Material returns the object's material
func (o *Object) Material() material.Material {
	return o.material
}

// SetMaterial replaces the object's material
func (o *Object) SetMaterial(m material.Material) {
	o.material = m
}

// WithMaterial sets the material and returns the object for chaining
func (o *Object) WithMaterial(m material.Material) *Object {
	o.SetMaterial(m)
	return o
}

// Transform returns the object-to-parent transform
func (o *Object) Transform() core.Matrix {
	return o.objectToWorld
}

// ObjectToWorld returns the object-to-parent transform
func (o *Object) ObjectToWorld() core.Matrix {
	return o.objectToWorld
}

// WorldToObject returns the cached parent-to-object transform
func (o *Object) WorldToObject() core.Matrix {
	return o.worldToObject
}

// SetTransform places the object in its parent's space. A singular
// transform is rejected and the previous transform kept.
func (o *Object) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("object transform: %w", err)
	}
	o.objectToWorld = m
	o.worldToObject = inv
	o.refreshAncestorBounds()
	return nil
}

// WithTransform sets the transform and returns the object for chaining.
// A failure is kept and reported by Err.
func (o *Object) WithTransform(m core.Matrix) *Object {
	if err := o.SetTransform(m); err != nil && o.err == nil {
		o.err = err
	}
	return o
}

// Err returns the first error recorded by a chained setter
func (o *Object) Err() error {
	return o.err
}

// Validate returns the first recorded error anywhere in the object's subtree
func (o *Object) Validate() error {
	if o.err != nil {
		return o.err
	}
	if g, ok := o.shape.(*Group); ok {
		for i, child := range g.children {
			if err := child.Validate(); err != nil {
				return fmt.Errorf("child %d: %w", i, err)
			}
		}
	}
	return nil
}

// Parent returns the owning group, or nil for a top-level object
func (o *Object) Parent() *Object {
	return o.parent
}

// IsGroup reports whether the object is a group
func (o *Object) IsGroup() bool {
	_, ok := o.shape.(*Group)
	return ok
}

// Children returns a copy of a group's children, or nil for other shapes
func (o *Object) Children() []*Object {
	g, ok := o.shape.(*Group)
	if !ok {
		return nil
	}
	children := make([]*Object, len(g.children))
	copy(children, g.children)
	return children
}

// AddChild appends child to a group. The child must not already belong to
// a group and must not be the group itself or one of its ancestors.
func (o *Object) AddChild(child *Object) error {
	g, ok := o.shape.(*Group)
	if !ok {
		return ErrNotGroup
	}
	if child == nil {
		return ErrNilObject
	}
	for a := o; a != nil; a = a.parent {
		if a == child {
			return ErrGroupCycle
		}
	}
	if child.parent != nil {
		return ErrAlreadyGrouped
	}
	if child.err != nil {
		return fmt.Errorf("child: %w", child.err)
	}

	child.parent = o
	g.children = append(g.children, child)
	g.bounds = g.bounds.Enclose(child.Bounds())
	o.refreshAncestorBounds()
	return nil
}

// ChildAt follows a path of child indices from this object. It reports
// false when any index is out of range or walks into a non-group.
func (o *Object) ChildAt(path ...int) (*Object, bool) {
	current := o
	for _, index := range path {
		g, ok := current.shape.(*Group)
		if !ok || index < 0 || index >= len(g.children) {
			return nil, false
		}
		current = g.children[index]
	}
	return current, true
}

// LocalBounds returns the bounding box in object space
func (o *Object) LocalBounds() core.Bounds {
	return o.shape.localBounds()
}

// Bounds returns the bounding box in the parent's space (world space for
// top-level objects)
func (o *Object) Bounds() core.Bounds {
	return o.shape.localBounds().Transform(o.objectToWorld)
}

// refreshAncestorBounds recomputes the cached bounds of every enclosing group
func (o *Object) refreshAncestorBounds() {
	for p := o.parent; p != nil; p = p.parent {
		p.shape.(*Group).recomputeBounds()
	}
}

// worldToObjectChain composes the world-to-object matrices from the root
// of the tree down to this object
func (o *Object) worldToObjectChain() core.Matrix {
	m := o.worldToObject
	for p := o.parent; p != nil; p = p.parent {
		m = m.Multiply(p.worldToObject)
	}
	return m
}

// objectToWorldChain is the inverse of worldToObjectChain
func (o *Object) objectToWorldChain() core.Matrix {
	m := o.objectToWorld
	for p := o.parent; p != nil; p = p.parent {
		m = p.objectToWorld.Multiply(m)
	}
	return m
}

// Intersections returns every intersection of a world-space ray with the
// object in solver order.
func (o *Object) Intersections(ray core.Ray) []Intersection {
	return o.AppendIntersections(ray, nil)
}

// AppendIntersections appends the intersections of a world-space ray to xs.
// The object is treated as the root of its tree.
func (o *Object) AppendIntersections(ray core.Ray, xs []Intersection) []Intersection {
	return o.appendIntersections(ray, core.Identity(), xs)
}

// appendIntersections takes a ray in the parent's space together with the
// composed world-to-parent matrix.
func (o *Object) appendIntersections(ray core.Ray, toParent core.Matrix, xs []Intersection) []Intersection {
	local := ray.Transform(o.worldToObject)
	toObject := o.worldToObject.Multiply(toParent)
	return o.shape.localIntersect(local, o, toObject, xs)
}

// NormalAt returns the unit world-space normal at a world-space point.
// hit supplies barycentric coordinates for smooth triangles and the
// composed transform when it refers to this object.
func (o *Object) NormalAt(worldPoint core.Tuple4, hit Intersection) core.Tuple4 {
	toObject := hit.toObject
	if hit.Object != o || toObject.Size() == 0 {
		toObject = o.worldToObjectChain()
	}

	localPoint := toObject.MultiplyTuple(worldPoint)
	localNormal := o.shape.localNormalAt(localPoint, hit)

	worldNormal := toObject.Transpose().MultiplyTuple(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}
