package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderScene creates a simple scene with open and closed cylinders
func NewCylinderScene() (*Preset, error) {
	gray := material.Default().WithColor(core.NewColor(0.5, 0.5, 0.5))
	gray.Specular = 0

	red := material.Default().WithColor(core.NewColor(0.8, 0.2, 0.2))
	blue := material.Default().WithColor(core.NewColor(0.2, 0.2, 0.8))

	gold := material.Default().WithColor(core.NewColor(0.8, 0.6, 0.2))
	gold.Diffuse = 0.5
	gold.Reflective = 0.6
	gold.Shininess = 300

	glass := material.NewGlass().WithColor(core.NewColor(0.05, 0.05, 0.05))
	glass.Diffuse = 0.1
	glass.Reflective = 0.8

	floor := geometry.NewPlane().WithMaterial(gray)

	// Center: gold tube pointing toward the camera, open so you can look through it
	tube := geometry.NewCylinder(geometry.Open, -1.75, 1.75).
		WithTransform(core.Chain(
			core.Scaling(0.35, 1, 0.35),
			core.RotationX(math.Pi/2),
			core.RotationY(-0.1),
			core.Translation(-0.15, 1.1, 0.25),
		)).
		WithMaterial(gold)

	// Right: tall capped cylinder standing on the floor
	tall := geometry.NewCylinder(geometry.Closed, 0, 2).
		WithTransform(core.Chain(core.Scaling(0.5, 1, 0.5), core.Translation(1.8, 0, 0))).
		WithMaterial(red)

	// Left: capped cylinder lying along the x axis
	lying := geometry.NewCylinder(geometry.Closed, 0, 1.6).
		WithTransform(core.Chain(core.Scaling(0.3, 1, 0.3), core.RotationZ(-math.Pi/2), core.Translation(-2.5, 0.3, 0))).
		WithMaterial(blue)

	// Front: short glass puck
	puck := geometry.NewCylinder(geometry.Closed, 0, 0.3).
		WithTransform(core.Chain(core.Scaling(0.4, 1, 0.4), core.Translation(0.9, 0, 1.6))).
		WithMaterial(glass)

	world, err := NewWorld(
		[]lights.RadialLight{lights.NewRadialLight(core.Point(-4, 6, 5), core.White)},
		[]*geometry.Object{floor, tube, tall, lying, puck},
	)
	if err != nil {
		return nil, err
	}

	return &Preset{
		World: world,
		View: View{
			From:        core.Point(0, 1.5, 4),
			To:          core.Point(0, 1, 0),
			Up:          core.Vector(0, 1, 0),
			FieldOfView: core.Radians(50),
			Width:       400,
			Height:      225,
		},
	}, nil
}
