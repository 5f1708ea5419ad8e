package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_Intersect(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected []float64
	}{
		{"parallel", core.NewRay(core.Point(0, 10, 0), core.Vector(0, 0, 1)), nil},
		{"coplanar", core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1)), nil},
		{"from above", core.NewRay(core.Point(0, 1, 0), core.Vector(0, -1, 0)), []float64{1}},
		{"from below", core.NewRay(core.Point(0, -1, 0), core.Vector(0, 1, 0)), []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTs(t, NewPlane().Intersections(tt.ray), tt.expected...)
		})
	}
}

func TestPlane_NormalIsConstant(t *testing.T) {
	p := NewPlane()
	for _, point := range []core.Tuple4{core.Point(0, 0, 0), core.Point(10, 0, -10), core.Point(-5, 0, 150)} {
		if n := p.NormalAt(point, Intersection{}); !n.ApproxEqual(core.Vector(0, 1, 0)) {
			t.Errorf("Expected (0,1,0) at %v, got %v", point, n)
		}
	}
}

func TestPlane_BoundsAreUnbounded(t *testing.T) {
	b := NewPlane().Bounds()
	if b.IsFinite() {
		t.Errorf("Plane bounds should be infinite, got %v", b)
	}
	if b.Min.Y != 0 || b.Max.Y != 0 {
		t.Errorf("Plane bounds should be flat in y, got %v", b)
	}
}
