package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// ErrInvalidIndex is returned for face indices that are not positive or
	// refer past the vertices read so far
	ErrInvalidIndex = errors.New("invalid OBJ index")
	// ErrMalformedOBJ is returned for recognized statements that cannot be parsed
	ErrMalformedOBJ = errors.New("malformed OBJ statement")
)

// OBJFace is one triangle with zero-based indices into OBJData
type OBJFace struct {
	Vertices [3]int
	Normals  [3]int // Valid only when Smooth is set
	Smooth   bool
}

// OBJGroup holds the triangles that followed a "g" statement. The unnamed
// group collects faces that appear before any "g".
type OBJGroup struct {
	Name  string
	Faces []OBJFace
}

// OBJData contains the geometry read from a Wavefront OBJ file
type OBJData struct {
	Vertices []core.Tuple4
	Normals  []core.Tuple4
	Groups   []OBJGroup
	Ignored  int // Lines with statements that are not supported
}

// TriangleCount returns the number of triangles across all groups
func (d *OBJData) TriangleCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Faces)
	}
	return n
}

// LoadOBJ reads a Wavefront OBJ file from disk
func LoadOBJ(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ParseOBJ reads vertices, vertex normals, groups and faces. Polygons are
// fan-triangulated from their first vertex. Other statements are counted
// in Ignored and skipped.
func ParseOBJ(r io.Reader) (*OBJData, error) {
	p := &objParser{
		data:       &OBJData{Groups: []OBJGroup{{}}},
		groupIndex: map[string]int{"": 0},
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	// Drop the unnamed group when every face was named
	if len(p.data.Groups[0].Faces) == 0 {
		p.data.Groups = p.data.Groups[1:]
	}

	core.ComponentLogger("loaders").Debug("parsed OBJ data",
		"vertices", len(p.data.Vertices),
		"normals", len(p.data.Normals),
		"groups", len(p.data.Groups),
		"triangles", p.data.TriangleCount(),
		"ignored", p.data.Ignored,
	)
	return p.data, nil
}

type objParser struct {
	data       *OBJData
	groupIndex map[string]int
	current    int
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseTriple(fields[1:])
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.data.Vertices = append(p.data.Vertices, core.Point(v[0], v[1], v[2]))
	case "vn":
		n, err := parseTriple(fields[1:])
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.data.Normals = append(p.data.Normals, core.Vector(n[0], n[1], n[2]))
	case "g":
		p.selectGroup(strings.Join(fields[1:], " "))
	case "f":
		return p.parseFace(fields[1:])
	default:
		p.data.Ignored++
	}
	return nil
}

func (p *objParser) selectGroup(name string) {
	index, ok := p.groupIndex[name]
	if !ok {
		index = len(p.data.Groups)
		p.groupIndex[name] = index
		p.data.Groups = append(p.data.Groups, OBJGroup{Name: name})
	}
	p.current = index
}

// parseTriple reads the x, y, z of a "v" or "vn" statement. A trailing w
// component is allowed and ignored.
func parseTriple(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 || len(fields) > 4 {
		return out, fmt.Errorf("%w: expected 3 components, got %d", ErrMalformedOBJ, len(fields))
	}
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
		}
		out[i] = v
	}
	return out, nil
}

// faceVertex is one "v", "v/vt", "v//vn" or "v/vt/vn" reference, zero-based
type faceVertex struct {
	vertex    int
	normal    int
	hasNormal bool
}

func (p *objParser) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: face needs at least 3 vertices, got %d", ErrMalformedOBJ, len(fields))
	}

	refs := make([]faceVertex, len(fields))
	smooth := true
	for i, field := range fields {
		ref, err := p.parseFaceVertex(field)
		if err != nil {
			return fmt.Errorf("face vertex %d: %w", i+1, err)
		}
		refs[i] = ref
		smooth = smooth && ref.hasNormal
	}

	group := &p.data.Groups[p.current]
	for i := 1; i < len(refs)-1; i++ {
		face := OBJFace{
			Vertices: [3]int{refs[0].vertex, refs[i].vertex, refs[i+1].vertex},
			Smooth:   smooth,
		}
		if smooth {
			face.Normals = [3]int{refs[0].normal, refs[i].normal, refs[i+1].normal}
		}
		group.Faces = append(group.Faces, face)
	}
	return nil
}

func (p *objParser) parseFaceVertex(field string) (faceVertex, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return faceVertex{}, fmt.Errorf("%w: %q", ErrMalformedOBJ, field)
	}

	vertex, err := resolveIndex(parts[0], len(p.data.Vertices))
	if err != nil {
		return faceVertex{}, fmt.Errorf("vertex %w", err)
	}
	ref := faceVertex{vertex: vertex}

	// Texture coordinates in parts[1] are not used
	if len(parts) == 3 && parts[2] != "" {
		normal, err := resolveIndex(parts[2], len(p.data.Normals))
		if err != nil {
			return faceVertex{}, fmt.Errorf("normal %w", err)
		}
		ref.normal = normal
		ref.hasNormal = true
	}
	return ref, nil
}

// resolveIndex converts a 1-based OBJ index to a zero-based one
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedOBJ, s)
	}
	if i <= 0 || i > count {
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, i, count)
	}
	return i - 1, nil
}

// ToGroup builds a group holding one subgroup per OBJ group, in file
// order. Faces with normals on every vertex become smooth triangles. A nil
// material keeps the default.
func (d *OBJData) ToGroup(mat *material.Material) (*geometry.Object, error) {
	root, err := geometry.NewGroup()
	if err != nil {
		return nil, err
	}

	for _, g := range d.Groups {
		if len(g.Faces) == 0 {
			continue
		}
		child, err := d.groupObject(g, mat)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		if err := root.AddChild(child); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// groupObject builds the meshes for one OBJ group. Flat and smooth faces
// go into separate meshes, wrapped together when both are present.
func (d *OBJData) groupObject(g OBJGroup, mat *material.Material) (*geometry.Object, error) {
	var flatFaces, smoothFaces, normalFaces []int
	for _, f := range g.Faces {
		if f.Smooth {
			smoothFaces = append(smoothFaces, f.Vertices[:]...)
			normalFaces = append(normalFaces, f.Normals[:]...)
		} else {
			flatFaces = append(flatFaces, f.Vertices[:]...)
		}
	}

	var meshes []*geometry.Object
	if len(flatFaces) > 0 {
		mesh, err := geometry.NewTriangleMesh(d.Vertices, flatFaces, &geometry.TriangleMeshOptions{Material: mat})
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	if len(smoothFaces) > 0 {
		mesh, err := geometry.NewTriangleMesh(d.Vertices, smoothFaces, &geometry.TriangleMeshOptions{
			Normals:     d.Normals,
			NormalFaces: normalFaces,
			Material:    mat,
		})
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}

	if len(meshes) == 1 {
		return meshes[0], nil
	}
	return geometry.NewGroup(meshes...)
}
