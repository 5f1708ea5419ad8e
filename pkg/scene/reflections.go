package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewReflectionsScene creates a checkered room with a mirror sphere, a glass
// sphere and a striped matte sphere
func NewReflectionsScene() (*Preset, error) {
	white := core.NewColor(0.9, 0.9, 0.9)
	gray := core.NewColor(0.35, 0.35, 0.35)

	// Checkered floor with a faint reflection
	floorMat := material.Default()
	floorMat.Pattern = material.NewCheckers(white, gray)
	floorMat.Specular = 0
	floorMat.Reflective = 0.2
	floor := geometry.NewPlane().WithMaterial(floorMat)

	// Striped back wall
	wallMat := material.Default()
	wallMat.Pattern = material.NewStripes(core.NewColor(0.45, 0.55, 0.75), core.NewColor(0.75, 0.8, 0.9))
	wallMat.Specular = 0
	if err := wallMat.SetPatternTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.RotationY(math.Pi/4))); err != nil {
		return nil, err
	}
	wall := geometry.NewPlane().
		WithTransform(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 6))).
		WithMaterial(wallMat)

	// Mirror
	mirrorMat := material.Default().WithColor(core.NewColor(0.1, 0.1, 0.1))
	mirrorMat.Diffuse = 0.3
	mirrorMat.Reflective = 0.9
	mirrorMat.Shininess = 300
	mirror := geometry.NewSphere().
		WithTransform(core.Translation(-1.5, 1, 0.5)).
		WithMaterial(mirrorMat)

	// Glass with a slight tint
	glassMat := material.NewGlass().WithColor(core.NewColor(0.1, 0.1, 0.12))
	glassMat.Ambient = 0
	glassMat.Diffuse = 0.1
	glassMat.Reflective = 0.9
	glassMat.Shininess = 300
	glass := geometry.NewSphere().
		WithTransform(core.Chain(core.Scaling(0.75, 0.75, 0.75), core.Translation(0.6, 0.75, -0.8))).
		WithMaterial(glassMat)

	// Matte sphere with a gradient
	matteMat := material.Default()
	matteMat.Pattern = material.NewGradient(core.NewColor(0.9, 0.3, 0.2), core.NewColor(0.9, 0.8, 0.2))
	matteMat.Specular = 0.3
	if err := matteMat.SetPatternTransform(core.Chain(core.Translation(1, 0, 0), core.Scaling(0.5, 1, 1))); err != nil {
		return nil, err
	}
	matte := geometry.NewSphere().
		WithTransform(core.Chain(core.Scaling(0.6, 0.6, 0.6), core.Translation(2, 0.6, 1.5))).
		WithMaterial(matteMat)

	world, err := NewWorld(
		[]lights.RadialLight{lights.NewRadialLight(core.Point(-5, 8, -8), core.White)},
		[]*geometry.Object{floor, wall, mirror, glass, matte},
	)
	if err != nil {
		return nil, err
	}

	return &Preset{
		World: world,
		View: View{
			From:        core.Point(0, 1.8, -5.5),
			To:          core.Point(0, 0.8, 0),
			Up:          core.Vector(0, 1, 0),
			FieldOfView: core.Radians(60),
			Width:       400,
			Height:      225,
		},
	}, nil
}
