package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// sphereGridPartitionDepth is deep enough that each bottom cell holds a
// handful of the 400 spheres
const sphereGridPartitionDepth = 3

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := core.Radians(h)

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a 20x20 grid of colored spheres on a floor,
// grouped with a binary partition
func NewSphereGridScene() (*Preset, error) {
	floorMat := material.Default().WithColor(core.NewColor(0.5, 0.5, 0.5))
	floorMat.Specular = 0
	objects := []*geometry.Object{geometry.NewPlane().WithMaterial(floorMat)}

	gridSize := 20

	// Fit the grid in roughly 9x9 units around x = z = 4.5
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies across x, chroma across z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			m := material.Default().WithColor(oklchToRGB(lightness, chroma, hue))
			m.Reflective = 0.1 + 0.15*float64((i+j)%3)
			m.Shininess = 100

			sphere := geometry.NewSphere().
				WithTransform(core.Chain(core.Scaling(radius, radius, radius), core.Translation(x, radius, z))).
				WithMaterial(m)
			objects = append(objects, sphere)
		}
	}

	world, err := NewWorld(
		[]lights.RadialLight{lights.NewRadialLight(core.Point(20, 25, 20), core.NewColor(1.0, 0.96, 0.9))},
		objects,
	)
	if err != nil {
		return nil, err
	}
	if err := world.Partition(sphereGridPartitionDepth); err != nil {
		return nil, err
	}

	return &Preset{
		World: world,
		View: View{
			From:        core.Point(4.5, 6, 18),
			To:          core.Point(4.5, 0.8, 4.5),
			Up:          core.Vector(0, 1, 0),
			FieldOfView: core.Radians(40),
			Width:       800,
			Height:      450,
		},
	}, nil
}
