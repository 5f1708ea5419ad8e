package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidMesh is returned for face lists that do not describe triangles
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals     []core.Tuple4      // Optional per-vertex normals
	NormalFaces []int              // Indices into Normals, parallel to faces
	Material    *material.Material // Optional material for every triangle
}

// NewTriangleMesh builds a group of triangles from vertices and face indices.
// Each group of three indices forms a triangle. When normal indices are
// supplied the triangles are smooth.
func NewTriangleMesh(vertices []core.Tuple4, faces []int, options *TriangleMeshOptions) (*Object, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}

	smooth := options != nil && options.NormalFaces != nil
	if smooth && len(options.NormalFaces) != len(faces) {
		return nil, fmt.Errorf("%w: %d normal indices for %d face indices",
			ErrInvalidMesh, len(options.NormalFaces), len(faces))
	}

	vertex := func(i int) (core.Tuple4, error) {
		if i < 0 || i >= len(vertices) {
			return core.Tuple4{}, fmt.Errorf("%w: vertex index %d out of range", ErrInvalidMesh, i)
		}
		return vertices[i], nil
	}
	normal := func(i int) (core.Tuple4, error) {
		if i < 0 || i >= len(options.Normals) {
			return core.Tuple4{}, fmt.Errorf("%w: normal index %d out of range", ErrInvalidMesh, i)
		}
		return options.Normals[i], nil
	}

	mesh, err := NewGroup()
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(faces); i += 3 {
		var p [3]core.Tuple4
		for k := range p {
			if p[k], err = vertex(faces[i+k]); err != nil {
				return nil, err
			}
		}

		var tri *Object
		if smooth {
			var n [3]core.Tuple4
			for k := range n {
				if n[k], err = normal(options.NormalFaces[i+k]); err != nil {
					return nil, err
				}
			}
			tri, err = NewSmoothTriangle(p[0], p[1], p[2], n[0], n[1], n[2])
		} else {
			tri, err = NewTriangle(p[0], p[1], p[2])
		}
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i/3, err)
		}

		if options != nil && options.Material != nil {
			tri.SetMaterial(*options.Material)
		}
		if err := mesh.AddChild(tri); err != nil {
			return nil, err
		}
	}

	return mesh, nil
}
