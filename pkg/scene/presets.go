package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrUnknownScene is returned by Lookup for names with no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// View describes where a camera looks from and the image it produces.
// Callers turn it into a renderer camera.
type View struct {
	From        core.Tuple4
	To          core.Tuple4
	Up          core.Tuple4
	FieldOfView float64 // Radians
	Width       int
	Height      int
}

// Transform returns the world-to-camera view transform
func (v View) Transform() core.Matrix {
	return core.ViewTransform(v.From, v.To, v.Up)
}

// Preset is a built-in world together with its default view
type Preset struct {
	World *World
	View  View
}

var presets = map[string]func() (*Preset, error){
	"default":     NewDefaultScene,
	"reflections": NewReflectionsScene,
	"spheregrid":  NewSphereGridScene,
	"cylinders":   NewCylinderScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds the named built-in scene
func Lookup(name string) (*Preset, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	p, err := build()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return p, nil
}
