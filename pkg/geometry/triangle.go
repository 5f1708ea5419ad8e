package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single flat triangle defined by three vertices
type Triangle struct {
	P1, P2, P3 core.Tuple4 // The three vertices
	E1, E2     core.Tuple4 // Edges P1->P2 and P1->P3
	Normal     core.Tuple4 // Precomputed face normal
	area2      float64     // |E2 x E1|, twice the area
	bbox       core.Bounds
}

// newTriangle precomputes the edges, normal and bounding box
func newTriangle(p1, p2, p3 core.Tuple4) (*Triangle, error) {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)

	// Collinear when the sine of the angle between the edges vanishes
	normal := e2.Cross(e1)
	area2 := normal.Magnitude()
	if area2 <= core.Epsilon*e1.Magnitude()*e2.Magnitude() {
		return nil, ErrDegenerateTriangle
	}

	return &Triangle{
		P1:     p1,
		P2:     p2,
		P3:     p3,
		E1:     e1,
		E2:     e2,
		Normal: normal.Normalize(),
		area2:  area2,
		bbox:   core.NewBoundsFromPoints(p1, p2, p3),
	}, nil
}

// barycentric runs the Möller-Trumbore test and returns t, u, v
func (tri *Triangle) barycentric(ray core.Ray) (t, u, v float64, ok bool) {
	dirCrossE2 := ray.Direction.Cross(tri.E2)
	det := tri.E1.Dot(dirCrossE2)

	// Ray lies in, or parallel to, the triangle's plane. det is
	// |d|·area2·cos of the angle to the normal, so compare the cosine.
	if math.Abs(det) < core.Epsilon*ray.Direction.Magnitude()*tri.area2 {
		return 0, 0, 0, false
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(tri.P1)
	u = f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	originCrossE1 := p1ToOrigin.Cross(tri.E1)
	v = f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * tri.E2.Dot(originCrossE1)
	return t, u, v, true
}

func (tri *Triangle) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	t, u, v, ok := tri.barycentric(ray)
	if !ok {
		return xs
	}
	return append(xs, Intersection{T: t, Object: owner, U: u, V: v, toObject: toObject})
}

func (tri *Triangle) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	return tri.Normal
}

func (tri *Triangle) localBounds() core.Bounds {
	return tri.bbox
}

// SmoothTriangle is a triangle with per-vertex normals interpolated by
// the barycentric coordinates of the hit.
type SmoothTriangle struct {
	Triangle
	N1, N2, N3 core.Tuple4
}

func (st *SmoothTriangle) localIntersect(ray core.Ray, owner *Object, toObject core.Matrix, xs []Intersection) []Intersection {
	return st.Triangle.localIntersect(ray, owner, toObject, xs)
}

func (st *SmoothTriangle) localNormalAt(point core.Tuple4, hit Intersection) core.Tuple4 {
	return st.N2.Multiply(hit.U).
		Add(st.N3.Multiply(hit.V)).
		Add(st.N1.Multiply(1 - hit.U - hit.V))
}

func (st *SmoothTriangle) localBounds() core.Bounds {
	return st.bbox
}
