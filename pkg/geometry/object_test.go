package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestObject_Defaults(t *testing.T) {
	s := NewSphere()
	if !s.Transform().ApproxEqual(core.Identity()) || !s.WorldToObject().ApproxEqual(core.Identity()) {
		t.Error("New objects should start with identity transforms")
	}
	if s.Material().Diffuse != material.Default().Diffuse {
		t.Error("New objects should start with the default material")
	}
	if s.Parent() != nil || s.IsGroup() || s.Children() != nil {
		t.Error("A sphere is an ungrouped leaf")
	}
}

func TestObject_TransformsStayInverse(t *testing.T) {
	s := NewSphere()
	m := core.Chain(core.Scaling(2, 3, 4), core.RotationX(0.3), core.Translation(1, -2, 3))
	mustTransform(t, s, m)

	if !s.ObjectToWorld().Multiply(s.WorldToObject()).ApproxEqual(core.Identity()) {
		t.Error("ObjectToWorld * WorldToObject should be the identity")
	}
}

func TestObject_SingularTransform(t *testing.T) {
	s := NewSphere()
	mustTransform(t, s, core.Translation(1, 0, 0))

	err := s.SetTransform(core.Scaling(0, 1, 1))
	if !errors.Is(err, core.ErrSingularMatrix) {
		t.Fatalf("Expected ErrSingularMatrix, got %v", err)
	}
	if !s.Transform().ApproxEqual(core.Translation(1, 0, 0)) {
		t.Error("A rejected transform must keep the previous one")
	}

	chained := NewCube().WithTransform(core.Scaling(1, 0, 1))
	if !errors.Is(chained.Err(), core.ErrSingularMatrix) {
		t.Errorf("WithTransform should record the error, got %v", chained.Err())
	}
	if !errors.Is(chained.Validate(), core.ErrSingularMatrix) {
		t.Errorf("Validate should report the recorded error, got %v", chained.Validate())
	}
}

func TestGroup_Empty(t *testing.T) {
	g := mustGroup(t)
	if !g.IsGroup() || len(g.Children()) != 0 {
		t.Fatal("Expected an empty group")
	}
	if xs := g.Intersections(core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))); len(xs) != 0 {
		t.Errorf("Empty group should have no intersections, got %d", len(xs))
	}
	if !g.LocalBounds().IsEmpty() {
		t.Errorf("Empty group should have empty bounds, got %v", g.LocalBounds())
	}
}

func TestGroup_AddChildSetsParent(t *testing.T) {
	g := mustGroup(t)
	s := NewSphere()
	if err := g.AddChild(s); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}
	if s.Parent() != g {
		t.Error("Child should record its group")
	}
	if children := g.Children(); len(children) != 1 || children[0] != s {
		t.Errorf("Unexpected children %v", children)
	}
}

func TestGroup_Intersect(t *testing.T) {
	s1 := NewSphere()
	s2 := mustTransform(t, NewSphere(), core.Translation(0, 0, -3))
	s3 := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g := mustGroup(t, s1, s2, s3)

	xs := g.Intersections(core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)))
	SortIntersections(xs)
	if len(xs) != 4 {
		t.Fatalf("Expected 4 intersections, got %d", len(xs))
	}
	expected := []*Object{s2, s2, s1, s1}
	for i, obj := range expected {
		if xs[i].Object != obj {
			t.Errorf("Intersection %d hit the wrong object", i)
		}
	}
	expectTs(t, xs, 1, 3, 4, 6)
}

func TestGroup_TransformedIntersect(t *testing.T) {
	s := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g := mustTransform(t, mustGroup(t, s), core.Scaling(2, 2, 2))

	xs := g.Intersections(core.NewRay(core.Point(10, 0, -10), core.Vector(0, 0, 1)))
	expectTs(t, xs, 8, 12)
	for _, x := range xs {
		if !x.ToObject().ApproxEqual(s.worldToObjectChain()) {
			t.Errorf("Recorded transform should compose the group and child transforms")
		}
	}
}

func TestGroup_BoundsPruneMisses(t *testing.T) {
	s := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g := mustGroup(t, s)

	// Passes near the sphere's box but misses it entirely
	if xs := g.Intersections(core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))); len(xs) != 0 {
		t.Errorf("Expected no hits, got %d", len(xs))
	}
}

func nestedGroupSphere(t *testing.T) (*Object, *Object) {
	t.Helper()
	s := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g2 := mustTransform(t, mustGroup(t, s), core.Scaling(1, 2, 3))
	g1 := mustTransform(t, mustGroup(t, g2), core.RotationY(math.Pi/2))
	return g1, s
}

func TestGroup_WorldToObjectChain(t *testing.T) {
	_, s := nestedGroupSphere(t)
	p := NewIntersection(1, s).ToObject().MultiplyTuple(core.Point(-2, 0, -10))
	if !p.ApproxEqual(core.Point(0, 0, -1)) {
		t.Errorf("Expected (0,0,-1), got %v", p)
	}

	n := s.objectToWorldChain().Multiply(s.worldToObjectChain())
	if !n.ApproxEqual(core.Identity()) {
		t.Error("Composed transforms should be inverses")
	}
}

func TestGroup_NestedNormal(t *testing.T) {
	_, s := nestedGroupSphere(t)
	n := s.NormalAt(core.Point(1.7321, 1.1547, -5.5774), Intersection{})
	if !nearTuple(n, core.Vector(0.2857, 0.4286, -0.8571), 1e-3) {
		t.Errorf("Expected (0.2857, 0.4286, -0.8571), got %v", n)
	}
}

func TestGroup_NormalFromIntersection(t *testing.T) {
	g1, s := nestedGroupSphere(t)

	// After both group transforms the sphere spans z = -6..-4 on the axis
	ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, -1))
	hit, ok := Hit(g1.Intersections(ray))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Object != s {
		t.Fatal("Hit should name the leaf sphere")
	}
	point := ray.Position(hit.T)
	if got, want := hit.NormalAt(point), s.NormalAt(point, Intersection{}); !got.ApproxEqual(want) {
		t.Errorf("Normal via intersection %v differs from normal via chain %v", got, want)
	}
	if !hit.NormalAt(point).ApproxEqual(core.Vector(0, 0, 1)) {
		t.Errorf("Expected normal facing the origin, got %v", hit.NormalAt(point))
	}
}

func TestGroup_AddChildErrors(t *testing.T) {
	outer := mustGroup(t)
	inner := mustGroup(t)
	if err := outer.AddChild(inner); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}
	grouped := NewSphere()
	if err := inner.AddChild(grouped); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}

	tests := []struct {
		name   string
		target *Object
		child  *Object
		err    error
	}{
		{"not a group", NewSphere(), NewSphere(), ErrNotGroup},
		{"nil child", outer, nil, ErrNilObject},
		{"self", outer, outer, ErrGroupCycle},
		{"ancestor", inner, outer, ErrGroupCycle},
		{"already grouped", outer, grouped, ErrAlreadyGrouped},
		{"bad transform", outer, NewSphere().WithTransform(core.Scaling(0, 0, 0)), core.ErrSingularMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.target.AddChild(tt.child); !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}

	if len(outer.Children()) != 1 || len(inner.Children()) != 1 {
		t.Error("Failed AddChild calls must not change the tree")
	}
}

func TestGroup_ChildAt(t *testing.T) {
	leaf := NewSphere()
	inner := mustGroup(t, leaf)
	outer := mustGroup(t, NewCube(), inner)

	if got, ok := outer.ChildAt(1, 0); !ok || got != leaf {
		t.Errorf("Expected the leaf at [1,0], got %v %v", got, ok)
	}
	if got, ok := outer.ChildAt(); !ok || got != outer {
		t.Error("Empty path should return the object itself")
	}

	for _, path := range [][]int{{2}, {-1}, {1, 1}, {0, 0}, {1, 0, 0}} {
		if got, ok := outer.ChildAt(path...); ok || got != nil {
			t.Errorf("Path %v should not resolve, got %v", path, got)
		}
	}
}

func TestGroup_BoundsFollowChildren(t *testing.T) {
	s := NewSphere()
	inner := mustGroup(t, s)
	outer := mustGroup(t, inner)

	mustTransform(t, s, core.Translation(10, 0, 0))
	if got := outer.LocalBounds().Max.X; !core.FloatEqual(got, 11) {
		t.Errorf("Outer bounds should follow the moved child, max x = %f", got)
	}

	mustTransform(t, inner, core.Scaling(2, 2, 2))
	if got := outer.LocalBounds().Max.X; !core.FloatEqual(got, 22) {
		t.Errorf("Outer bounds should follow the scaled group, max x = %f", got)
	}
}

func TestGroup_ValidateNested(t *testing.T) {
	bad := NewSphere()
	g := mustGroup(t, mustGroup(t, bad))
	// Recorded after grouping, so AddChild could not reject it
	bad.WithTransform(core.Scaling(0, 1, 1))

	if err := g.Validate(); !errors.Is(err, core.ErrSingularMatrix) {
		t.Errorf("Expected nested ErrSingularMatrix, got %v", err)
	}
}
