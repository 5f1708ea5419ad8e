package core

import (
	"math"
	"testing"
)

func TestTransforms_ApplyToPoints(t *testing.T) {
	tests := []struct {
		name      string
		transform Matrix
		input     Tuple4
		expected  Tuple4
	}{
		{"translate point", Translation(5, -3, 2), Point(-3, 4, 5), Point(2, 1, 7)},
		{"translate vector is a no-op", Translation(5, -3, 2), Vector(-3, 4, 5), Vector(-3, 4, 5)},
		{"scale point", Scaling(2, 3, 4), Point(-4, 6, 8), Point(-8, 18, 32)},
		{"scale vector", Scaling(2, 3, 4), Vector(-4, 6, 8), Vector(-8, 18, 32)},
		{"reflect by negative scale", Scaling(-1, 1, 1), Point(2, 3, 4), Point(-2, 3, 4)},
		{"rotate x quarter", RotationX(math.Pi / 2), Point(0, 1, 0), Point(0, 0, 1)},
		{"rotate x eighth", RotationX(math.Pi / 4), Point(0, 1, 0), Point(0, math.Sqrt2/2, math.Sqrt2/2)},
		{"rotate y quarter", RotationY(math.Pi / 2), Point(0, 0, 1), Point(1, 0, 0)},
		{"rotate z quarter", RotationZ(math.Pi / 2), Point(0, 1, 0), Point(-1, 0, 0)},
		{"shear x by y", Shearing(1, 0, 0, 0, 0, 0), Point(2, 3, 4), Point(5, 3, 4)},
		{"shear z by y", Shearing(0, 0, 0, 0, 0, 1), Point(2, 3, 4), Point(2, 3, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform.MultiplyTuple(tt.input)
			if !got.ApproxEqual(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTransforms_InverseTranslation(t *testing.T) {
	inv, err := Translation(5, -3, 2).Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := inv.MultiplyTuple(Point(-3, 4, 5)); !got.ApproxEqual(Point(-8, 7, 3)) {
		t.Errorf("Expected (-8, 7, 3), got %v", got)
	}
}

func TestChain_AppliesInOrder(t *testing.T) {
	p := Point(1, 0, 1)
	chained := Chain(RotationX(math.Pi/2), Scaling(5, 5, 5), Translation(10, 5, 7))
	if got := chained.MultiplyTuple(p); !got.ApproxEqual(Point(15, 0, 7)) {
		t.Errorf("Expected (15, 0, 7), got %v", got)
	}
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name     string
		from     Tuple4
		to       Tuple4
		up       Tuple4
		expected Matrix
	}{
		{
			name:     "default orientation",
			from:     Point(0, 0, 0),
			to:       Point(0, 0, -1),
			up:       Vector(0, 1, 0),
			expected: Identity(),
		},
		{
			name:     "looking in positive z",
			from:     Point(0, 0, 0),
			to:       Point(0, 0, 1),
			up:       Vector(0, 1, 0),
			expected: Scaling(-1, 1, -1),
		},
		{
			name:     "moves the world",
			from:     Point(0, 0, 8),
			to:       Point(0, 0, 0),
			up:       Vector(0, 1, 0),
			expected: Translation(0, 0, -8),
		},
		{
			name: "arbitrary",
			from: Point(1, 3, 2),
			to:   Point(4, -2, 8),
			up:   Vector(1, 1, 0),
			expected: NewMatrix(
				[]float64{-0.50709, 0.50709, 0.67612, -2.36643},
				[]float64{0.76772, 0.60609, 0.12122, -2.82843},
				[]float64{-0.35857, 0.59761, -0.71714, 0.00000},
				[]float64{0.00000, 0.00000, 0.00000, 1.00000},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewTransform(tt.from, tt.to, tt.up)
			if !got.ApproxEqual(tt.expected) {
				t.Errorf("Expected\n%v\ngot\n%v", tt.expected, got)
			}
		})
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); !FloatEqual(got, math.Pi) {
		t.Errorf("Expected pi, got %f", got)
	}
}

func TestRay_PositionAndTransform(t *testing.T) {
	r := NewRay(Point(2, 3, 4), Vector(1, 0, 0))
	if got := r.Position(2.5); !got.ApproxEqual(Point(4.5, 3, 4)) {
		t.Errorf("Expected (4.5, 3, 4), got %v", got)
	}

	r = NewRay(Point(1, 2, 3), Vector(0, 1, 0))
	moved := r.Transform(Translation(3, 4, 5))
	if !moved.Origin.ApproxEqual(Point(4, 6, 8)) || !moved.Direction.ApproxEqual(Vector(0, 1, 0)) {
		t.Errorf("Unexpected translated ray %+v", moved)
	}
	scaled := r.Transform(Scaling(2, 3, 4))
	if !scaled.Origin.ApproxEqual(Point(2, 6, 12)) || !scaled.Direction.ApproxEqual(Vector(0, 3, 0)) {
		t.Errorf("Unexpected scaled ray %+v", scaled)
	}
}

func TestColor_Operations(t *testing.T) {
	a := NewColor(0.9, 0.6, 0.75)
	b := NewColor(0.7, 0.1, 0.25)
	if got := a.Add(b); !got.ApproxEqual(NewColor(1.6, 0.7, 1.0)) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Subtract(b); !got.ApproxEqual(NewColor(0.2, 0.5, 0.5)) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := NewColor(0.2, 0.3, 0.4).Multiply(2); !got.ApproxEqual(NewColor(0.4, 0.6, 0.8)) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := NewColor(1, 0.2, 0.4).Hadamard(NewColor(0.9, 1, 0.1)); !got.ApproxEqual(NewColor(0.9, 0.2, 0.04)) {
		t.Errorf("Hadamard: got %v", got)
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in       float64
		expected uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{1.5, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := ToByte(tt.in); got != tt.expected {
			t.Errorf("ToByte(%v): expected %d, got %d", tt.in, tt.expected, got)
		}
	}
}
