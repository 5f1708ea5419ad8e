package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Refractive indices of common media
const (
	Vacuum  = 1.0
	Air     = 1.00029
	Water   = 1.333
	Glass   = 1.5
	Diamond = 2.417
)

// Material describes how a surface responds to light under the Phong model,
// plus its reflective and refractive behavior.
type Material struct {
	Pattern         Pattern
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64 // 0 = matte, 1 = mirror
	Transparency    float64 // 0 = opaque, 1 = fully transparent
	RefractiveIndex float64

	patternTransform core.Matrix // pattern space -> object space
	objectToPattern  core.Matrix // cached inverse of patternTransform
}

// Default returns the default white material
func Default() Material {
	return Material{
		Pattern:          NewSolid(core.White),
		Ambient:          0.1,
		Diffuse:          0.9,
		Specular:         0.9,
		Shininess:        200,
		RefractiveIndex:  Vacuum,
		patternTransform: core.Identity(),
		objectToPattern:  core.Identity(),
	}
}

// NewGlass returns a fully transparent material with a glass refractive index
func NewGlass() Material {
	m := Default()
	m.Transparency = 1.0
	m.RefractiveIndex = Glass
	return m
}

// WithColor returns a copy of the material with a solid color pattern
func (m Material) WithColor(color core.Color) Material {
	m.Pattern = NewSolid(color)
	return m
}

// SetPatternTransform places the pattern within object space.
// It fails if the transform cannot be inverted.
func (m *Material) SetPatternTransform(transform core.Matrix) error {
	inv, err := transform.Inverse()
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	m.patternTransform = transform
	m.objectToPattern = inv
	return nil
}

// PatternTransform returns the pattern-to-object transform
func (m Material) PatternTransform() core.Matrix {
	if m.patternTransform.Size() == 0 {
		return core.Identity()
	}
	return m.patternTransform
}

// ColorAt evaluates the pattern at a point given in object space
func (m Material) ColorAt(objectPoint core.Tuple4) core.Color {
	if m.Pattern == nil {
		return core.White
	}
	if m.objectToPattern.Size() == 0 {
		return m.Pattern.ColorAt(objectPoint)
	}
	return m.Pattern.ColorAt(m.objectToPattern.MultiplyTuple(objectPoint))
}
