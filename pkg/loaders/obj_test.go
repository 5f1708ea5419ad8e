package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func mustParseOBJ(t *testing.T, src string) *OBJData {
	t.Helper()
	data, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	return data
}

func TestParseOBJ_IgnoresUnknownStatements(t *testing.T) {
	src := `There was a young lady named Bright
who traveled much faster than light.
She set out one day
in a relative way,
and came back the previous night.`

	data := mustParseOBJ(t, src)
	if data.Ignored != 5 {
		t.Errorf("Expected 5 ignored lines, got %d", data.Ignored)
	}
	if len(data.Vertices) != 0 || len(data.Groups) != 0 {
		t.Errorf("Expected no geometry, got %d vertices and %d groups", len(data.Vertices), len(data.Groups))
	}
}

func TestParseOBJ_CommentsAndBlankLines(t *testing.T) {
	data := mustParseOBJ(t, "# a comment\n\n   \nv 1 2 3\n")
	if data.Ignored != 0 {
		t.Errorf("Comments and blank lines should not be counted, got %d", data.Ignored)
	}
	if len(data.Vertices) != 1 {
		t.Errorf("Expected 1 vertex, got %d", len(data.Vertices))
	}
}

func TestParseOBJ_Vertices(t *testing.T) {
	src := `v -1 1 0
v -1.0000 0.5000 0.0000
v 1 0 0
v 1 1 0 1.0`

	data := mustParseOBJ(t, src)
	expected := []core.Tuple4{
		core.Point(-1, 1, 0),
		core.Point(-1, 0.5, 0),
		core.Point(1, 0, 0),
		core.Point(1, 1, 0),
	}
	if len(data.Vertices) != len(expected) {
		t.Fatalf("Expected %d vertices, got %d", len(expected), len(data.Vertices))
	}
	for i, want := range expected {
		if !data.Vertices[i].ApproxEqual(want) {
			t.Errorf("Vertex %d: expected %v, got %v", i+1, want, data.Vertices[i])
		}
	}
}

func TestParseOBJ_Faces(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected [][3]int
	}{
		{
			name: "triangles",
			src: `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

f 1 2 3
f 1 3 4`,
			expected: [][3]int{{0, 1, 2}, {0, 2, 3}},
		},
		{
			name: "polygon fan",
			src: `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
v 0 2 0

f 1 2 3 4 5`,
			expected: [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}},
		},
		{
			name: "texture coordinates ignored",
			src: `v 0 1 0
v -1 0 0
v 1 0 0
vt 0 0
f 1/1 2/1 3/1`,
			expected: [][3]int{{0, 1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mustParseOBJ(t, tt.src)
			if len(data.Groups) != 1 || data.Groups[0].Name != "" {
				t.Fatalf("Expected only the unnamed group, got %+v", data.Groups)
			}
			faces := data.Groups[0].Faces
			if len(faces) != len(tt.expected) {
				t.Fatalf("Expected %d triangles, got %d", len(tt.expected), len(faces))
			}
			for i, want := range tt.expected {
				if faces[i].Vertices != want {
					t.Errorf("Triangle %d: expected %v, got %v", i, want, faces[i].Vertices)
				}
				if faces[i].Smooth {
					t.Errorf("Triangle %d should not be smooth", i)
				}
			}
		})
	}
}

func TestParseOBJ_NamedGroups(t *testing.T) {
	src := `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

g FirstGroup
f 1 2 3
g SecondGroup
f 1 3 4
g FirstGroup
f 2 3 4`

	data := mustParseOBJ(t, src)
	if len(data.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(data.Groups))
	}
	if data.Groups[0].Name != "FirstGroup" || data.Groups[1].Name != "SecondGroup" {
		t.Errorf("Unexpected group order %q, %q", data.Groups[0].Name, data.Groups[1].Name)
	}
	if len(data.Groups[0].Faces) != 2 || len(data.Groups[1].Faces) != 1 {
		t.Errorf("Expected 2 and 1 faces, got %d and %d", len(data.Groups[0].Faces), len(data.Groups[1].Faces))
	}
	if data.TriangleCount() != 3 {
		t.Errorf("Expected 3 triangles, got %d", data.TriangleCount())
	}
}

func TestParseOBJ_Normals(t *testing.T) {
	src := `v 0 1 0
v -1 0 0
v 1 0 0

vn -1 0 0
vn 1 0 0
vn 0 1 0

f 1//3 2//1 3//2
f 1/0/3 2/102/1 3/14/2`

	data := mustParseOBJ(t, src)
	if len(data.Normals) != 3 || !data.Normals[2].ApproxEqual(core.Vector(0, 1, 0)) {
		t.Fatalf("Unexpected normals %v", data.Normals)
	}
	faces := data.Groups[0].Faces
	if len(faces) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(faces))
	}
	for i, f := range faces {
		if !f.Smooth {
			t.Errorf("Triangle %d should be smooth", i)
		}
		if f.Vertices != [3]int{0, 1, 2} || f.Normals != [3]int{2, 0, 1} {
			t.Errorf("Triangle %d: unexpected indices %v / %v", i, f.Vertices, f.Normals)
		}
	}
}

func TestParseOBJ_PartialNormalsAreFlat(t *testing.T) {
	src := `v 0 1 0
v -1 0 0
v 1 0 0
vn 0 0 1
f 1//1 2 3//1`

	data := mustParseOBJ(t, src)
	if data.Groups[0].Faces[0].Smooth {
		t.Error("A face missing a normal on any vertex should be flat")
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	header := "v 0 1 0\nv -1 0 0\nv 1 0 0\nvn 0 0 1\n"
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{"zero index", header + "f 0 1 2", ErrInvalidIndex},
		{"index past vertices", header + "f 1 2 4", ErrInvalidIndex},
		{"negative index", header + "f -1 2 3", ErrInvalidIndex},
		{"normal index past normals", header + "f 1//2 2//1 3//1", ErrInvalidIndex},
		{"forward reference", "f 1 2 3\n" + header, ErrInvalidIndex},
		{"too few face vertices", header + "f 1 2", ErrMalformedOBJ},
		{"non-numeric index", header + "f 1 a 3", ErrMalformedOBJ},
		{"non-numeric vertex", "v 1 x 2", ErrMalformedOBJ},
		{"short vertex", "v 1 2", ErrMalformedOBJ},
		{"short normal", "vn 1", ErrMalformedOBJ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestOBJData_ToGroup(t *testing.T) {
	src := `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

g FirstGroup
f 1 2 3
g SecondGroup
f 1 3 4`

	data := mustParseOBJ(t, src)
	root, err := data.ToGroup(nil)
	if err != nil {
		t.Fatalf("ToGroup failed: %v", err)
	}
	if n := len(root.Children()); n != 2 {
		t.Fatalf("Expected 2 subgroups, got %d", n)
	}

	for i, corners := range [][3]int{{0, 1, 2}, {0, 2, 3}} {
		tri, ok := root.ChildAt(i, 0)
		if !ok {
			t.Fatalf("Missing triangle in group %d", i)
		}
		shape, ok := tri.Shape().(*geometry.Triangle)
		if !ok {
			t.Fatalf("Group %d: expected *geometry.Triangle, got %T", i, tri.Shape())
		}
		if !shape.P1.ApproxEqual(data.Vertices[corners[0]]) ||
			!shape.P2.ApproxEqual(data.Vertices[corners[1]]) ||
			!shape.P3.ApproxEqual(data.Vertices[corners[2]]) {
			t.Errorf("Group %d: unexpected vertices %v %v %v", i, shape.P1, shape.P2, shape.P3)
		}
	}
}

func TestOBJData_ToGroupSmoothAndMaterial(t *testing.T) {
	src := `v 0 1 0
v -1 0 0
v 1 0 0
v 0 -1 0
vn -1 0 0
vn 1 0 0
vn 0 1 0
f 1//3 2//1 3//2
f 2 4 3`

	data := mustParseOBJ(t, src)
	mat := material.Default().WithColor(core.NewColor(1, 0, 0))
	root, err := data.ToGroup(&mat)
	if err != nil {
		t.Fatalf("ToGroup failed: %v", err)
	}

	// One OBJ group holding a flat mesh and a smooth mesh
	flat, ok := root.ChildAt(0, 0, 0)
	if !ok {
		t.Fatal("Missing flat triangle")
	}
	if _, ok := flat.Shape().(*geometry.Triangle); !ok {
		t.Errorf("Expected a flat triangle, got %T", flat.Shape())
	}
	smooth, ok := root.ChildAt(0, 1, 0)
	if !ok {
		t.Fatal("Missing smooth triangle")
	}
	if _, ok := smooth.Shape().(*geometry.SmoothTriangle); !ok {
		t.Errorf("Expected a smooth triangle, got %T", smooth.Shape())
	}
	if !smooth.Material().ColorAt(core.Point(0, 0, 0)).ApproxEqual(core.NewColor(1, 0, 0)) {
		t.Error("Triangles should carry the supplied material")
	}

	ray := core.NewRay(core.Point(0, 0.5, -2), core.Vector(0, 0, 1))
	if xs := root.Intersections(ray); len(xs) != 1 || !core.FloatEqual(xs[0].T, 2) {
		t.Errorf("Expected one hit at t=2, got %v", xs)
	}
}

func TestOBJData_ToGroupDegenerate(t *testing.T) {
	data := mustParseOBJ(t, "v 0 0 0\nv 1 0 0\nv 2 0 0\nf 1 2 3")
	if _, err := data.ToGroup(nil); !errors.Is(err, geometry.ErrDegenerateTriangle) {
		t.Errorf("Expected ErrDegenerateTriangle, got %v", err)
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.obj")
	if err := os.WriteFile(path, []byte("v 0 1 0\nv -1 0 0\nv 1 0 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if data.TriangleCount() != 1 {
		t.Errorf("Expected 1 triangle, got %d", data.TriangleCount())
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
