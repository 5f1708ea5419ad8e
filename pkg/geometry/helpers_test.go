package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// nearTuple compares tuples with a looser tolerance for rounded reference values
func nearTuple(a, b core.Tuple4, tol float64) bool {
	return math.Abs(a.X-b.X) < tol &&
		math.Abs(a.Y-b.Y) < tol &&
		math.Abs(a.Z-b.Z) < tol &&
		math.Abs(a.W-b.W) < tol
}

// expectTs checks the t values of xs in order
func expectTs(t *testing.T, xs []Intersection, expected ...float64) {
	t.Helper()
	if len(xs) != len(expected) {
		t.Fatalf("Expected %d intersections, got %d", len(expected), len(xs))
	}
	for i, want := range expected {
		if math.Abs(xs[i].T-want) > 1e-4 {
			t.Errorf("Intersection %d: expected t=%f, got %f", i, want, xs[i].T)
		}
	}
}

func mustTransform(t *testing.T, o *Object, m core.Matrix) *Object {
	t.Helper()
	if err := o.SetTransform(m); err != nil {
		t.Fatalf("SetTransform failed: %v", err)
	}
	return o
}

func mustGroup(t *testing.T, children ...*Object) *Object {
	t.Helper()
	g, err := NewGroup(children...)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	return g
}
