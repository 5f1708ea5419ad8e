package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCube_Intersect(t *testing.T) {
	tests := []struct {
		name      string
		origin    core.Tuple4
		direction core.Tuple4
		t1, t2    float64
	}{
		{"+x", core.Point(5, 0.5, 0), core.Vector(-1, 0, 0), 4, 6},
		{"-x", core.Point(-5, 0.5, 0), core.Vector(1, 0, 0), 4, 6},
		{"+y", core.Point(0.5, 5, 0), core.Vector(0, -1, 0), 4, 6},
		{"-y", core.Point(0.5, -5, 0), core.Vector(0, 1, 0), 4, 6},
		{"+z", core.Point(0.5, 0, 5), core.Vector(0, 0, -1), 4, 6},
		{"-z", core.Point(0.5, 0, -5), core.Vector(0, 0, 1), 4, 6},
		{"inside", core.Point(0, 0.5, 0), core.Vector(0, 0, 1), -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs := NewCube().Intersections(core.NewRay(tt.origin, tt.direction))
			expectTs(t, xs, tt.t1, tt.t2)
		})
	}
}

func TestCube_Miss(t *testing.T) {
	tests := []struct {
		origin    core.Tuple4
		direction core.Tuple4
	}{
		{core.Point(-2, 0, 0), core.Vector(0.2673, 0.5345, 0.8018)},
		{core.Point(0, -2, 0), core.Vector(0.8018, 0.2673, 0.5345)},
		{core.Point(0, 0, -2), core.Vector(0.5345, 0.8018, 0.2673)},
		{core.Point(2, 0, 2), core.Vector(0, 0, -1)},
		{core.Point(0, 2, 2), core.Vector(0, -1, 0)},
		{core.Point(2, 2, 0), core.Vector(-1, 0, 0)},
	}

	for _, tt := range tests {
		if xs := NewCube().Intersections(core.NewRay(tt.origin, tt.direction)); len(xs) != 0 {
			t.Errorf("Ray from %v along %v should miss, got %d hits", tt.origin, tt.direction, len(xs))
		}
	}
}

func TestCube_Normal(t *testing.T) {
	tests := []struct {
		point    core.Tuple4
		expected core.Tuple4
	}{
		{core.Point(1, 0.5, -0.8), core.Vector(1, 0, 0)},
		{core.Point(-1, -0.2, 0.9), core.Vector(-1, 0, 0)},
		{core.Point(-0.4, 1, -0.1), core.Vector(0, 1, 0)},
		{core.Point(0.3, -1, -0.7), core.Vector(0, -1, 0)},
		{core.Point(-0.6, 0.3, 1), core.Vector(0, 0, 1)},
		{core.Point(0.4, 0.4, -1), core.Vector(0, 0, -1)},
		// Corners resolve to the x face first
		{core.Point(1, 1, 1), core.Vector(1, 0, 0)},
		{core.Point(-1, -1, -1), core.Vector(-1, 0, 0)},
		// y wins over z on a y/z edge
		{core.Point(0, 1, 1), core.Vector(0, 1, 0)},
	}

	c := NewCube()
	for _, tt := range tests {
		if n := c.NormalAt(tt.point, Intersection{}); !n.ApproxEqual(tt.expected) {
			t.Errorf("Normal at %v: expected %v, got %v", tt.point, tt.expected, n)
		}
	}
}
