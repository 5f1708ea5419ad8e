package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultWorld returns the canonical two-sphere world: a light at
// (-10, 10, -10), a green-tinted unit sphere and a half-size white sphere
// inside it.
func DefaultWorld() *World {
	outer := geometry.NewSphere()
	m := material.Default().WithColor(core.NewColor(0.8, 1.0, 0.6))
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)

	inner := geometry.NewSphere().WithTransform(core.Scaling(0.5, 0.5, 0.5))

	return &World{
		Lights:  []lights.RadialLight{lights.NewRadialLight(core.Point(-10, 10, -10), core.White)},
		Objects: []*geometry.Object{outer, inner},
	}
}

// NewDefaultScene frames the default world with a front-on camera
func NewDefaultScene() (*Preset, error) {
	return &Preset{
		World: DefaultWorld(),
		View: View{
			From:        core.Point(0, 1.5, -5),
			To:          core.Point(0, 0, 0),
			Up:          core.Vector(0, 1, 0),
			FieldOfView: math.Pi / 3,
			Width:       400,
			Height:      225,
		},
	}, nil
}
