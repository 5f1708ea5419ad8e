package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidConfig is returned for scene files that decode but do not
// describe a usable scene
var ErrInvalidConfig = errors.New("invalid scene config")

// Defaults for settings a scene file leaves out
const (
	DefaultWidth       = 400
	DefaultHeight      = 300
	DefaultFieldOfView = 60.0 // Degrees
	DefaultMaxDepth    = 5
)

// SceneConfig is a scene described in TOML. Angles are written in degrees;
// FieldOfView holds radians once parsed.
type SceneConfig struct {
	Width          int            `toml:"width"`
	Height         int            `toml:"height"`
	FieldOfView    float64        `toml:"field_of_view"`
	MaxDepth       int            `toml:"max_depth"`
	PartitionDepth int            `toml:"partition_depth"` // 0 disables partitioning
	Camera         CameraConfig   `toml:"camera"`
	Lights         []LightConfig  `toml:"lights"`
	Objects        []ObjectConfig `toml:"objects"`

	baseDir string // Directory that relative mesh paths are resolved against
}

// CameraConfig positions the eye
type CameraConfig struct {
	From [3]float64 `toml:"from"`
	To   [3]float64 `toml:"to"`
	Up   [3]float64 `toml:"up"`
}

// LightConfig describes a point light
type LightConfig struct {
	Position  [3]float64  `toml:"position"`
	Intensity *[3]float64 `toml:"intensity"` // Defaults to white
}

// TransformConfig is one step of an object or pattern transform. Steps are
// applied in the order listed.
//
// Supported ops: translate (x y z), scale (x y z, or one uniform factor),
// rotate_x, rotate_y, rotate_z (degrees), shear (xy xz yx yz zx zy).
type TransformConfig struct {
	Op     string    `toml:"op"`
	Values []float64 `toml:"values"`
}

// PatternConfig selects a two-color pattern
type PatternConfig struct {
	Kind      string            `toml:"kind"` // stripes, rings, gradient, checkers
	A         [3]float64        `toml:"a"`
	B         [3]float64        `toml:"b"`
	Transform []TransformConfig `toml:"transform"`
}

// MaterialConfig overrides fields of a base material. Unset fields keep
// the base value.
type MaterialConfig struct {
	Base            string         `toml:"base"` // "default" or "glass"
	Color           *[3]float64    `toml:"color"`
	Pattern         *PatternConfig `toml:"pattern"`
	Ambient         *float64       `toml:"ambient"`
	Diffuse         *float64       `toml:"diffuse"`
	Specular        *float64       `toml:"specular"`
	Shininess       *float64       `toml:"shininess"`
	Reflective      *float64       `toml:"reflective"`
	Transparency    *float64       `toml:"transparency"`
	RefractiveIndex *float64       `toml:"refractive_index"`
}

// ObjectConfig describes one object. Kind selects the shape:
//
//	sphere, glass_sphere, plane, cube  no extra fields
//	cylinder                           minimum, maximum, closed
//	triangle                           points, optional normals for smooth shading
//	obj                                file, relative to the scene file
//	group                              children
type ObjectConfig struct {
	Kind      string            `toml:"kind"`
	Transform []TransformConfig `toml:"transform"`
	Material  *MaterialConfig   `toml:"material"`

	Minimum *float64 `toml:"minimum"`
	Maximum *float64 `toml:"maximum"`
	Closed  bool     `toml:"closed"`

	Points  [][3]float64 `toml:"points"`
	Normals [][3]float64 `toml:"normals"`

	File string `toml:"file"`

	Children []ObjectConfig `toml:"children"`
}

// LoadConfig reads a TOML scene file. Mesh paths inside it are resolved
// relative to the file's directory.
func LoadConfig(filename string) (*SceneConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	cfg, err := ParseConfig(file, filepath.Dir(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ParseConfig decodes a TOML scene and fills in defaults. Unknown keys are
// rejected so typos do not silently change a scene.
func ParseConfig(r io.Reader, baseDir string) (*SceneConfig, error) {
	cfg := &SceneConfig{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		FieldOfView: DefaultFieldOfView,
		MaxDepth:    DefaultMaxDepth,
		Camera: CameraConfig{
			From: [3]float64{0, 0, -5},
			Up:   [3]float64{0, 1, 0},
		},
		baseDir: baseDir,
	}

	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if !(cfg.FieldOfView > 0 && cfg.FieldOfView < 180) {
		return nil, fmt.Errorf("%w: field of view %g degrees", ErrInvalidConfig, cfg.FieldOfView)
	}
	if cfg.MaxDepth < 0 || cfg.PartitionDepth < 0 {
		return nil, fmt.Errorf("%w: depths must not be negative", ErrInvalidConfig)
	}
	cfg.FieldOfView = core.Radians(cfg.FieldOfView)

	core.ComponentLogger("loaders").Debug("parsed scene config",
		"width", cfg.Width,
		"height", cfg.Height,
		"lights", len(cfg.Lights),
		"objects", len(cfg.Objects),
	)
	return cfg, nil
}

// View returns the camera placement and image size
func (c *SceneConfig) View() scene.View {
	return scene.View{
		From:        point(c.Camera.From),
		To:          point(c.Camera.To),
		Up:          vector(c.Camera.Up),
		FieldOfView: c.FieldOfView,
		Width:       c.Width,
		Height:      c.Height,
	}
}

// Build constructs the world and view. When PartitionDepth is positive the
// objects are regrouped with a binary partition of that depth.
func (c *SceneConfig) Build() (*scene.Preset, error) {
	lightList := make([]lights.RadialLight, len(c.Lights))
	for i, l := range c.Lights {
		intensity := core.White
		if l.Intensity != nil {
			intensity = color(*l.Intensity)
		}
		lightList[i] = lights.NewRadialLight(point(l.Position), intensity)
	}

	objects := make([]*geometry.Object, len(c.Objects))
	for i, oc := range c.Objects {
		o, err := c.buildObject(oc)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, oc.Kind, err)
		}
		objects[i] = o
	}

	world, err := scene.NewWorld(lightList, objects)
	if err != nil {
		return nil, err
	}
	if c.PartitionDepth > 0 {
		if err := world.Partition(c.PartitionDepth); err != nil {
			return nil, err
		}
	}
	return &scene.Preset{World: world, View: c.View()}, nil
}

func (c *SceneConfig) buildObject(oc ObjectConfig) (*geometry.Object, error) {
	var mat *material.Material
	if oc.Material != nil {
		m, err := oc.Material.build()
		if err != nil {
			return nil, err
		}
		mat = &m
	}

	o, err := c.buildShape(oc, mat)
	if err != nil {
		return nil, err
	}

	if len(oc.Transform) > 0 {
		m, err := buildTransform(oc.Transform)
		if err != nil {
			return nil, err
		}
		if err := o.SetTransform(m); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// buildShape creates the bare object. Leaf shapes get mat directly; meshes
// hand it to every triangle.
func (c *SceneConfig) buildShape(oc ObjectConfig, mat *material.Material) (*geometry.Object, error) {
	var o *geometry.Object
	switch oc.Kind {
	case "sphere":
		o = geometry.NewSphere()
	case "glass_sphere":
		o = geometry.NewGlassSphere()
	case "plane":
		o = geometry.NewPlane()
	case "cube":
		o = geometry.NewCube()
	case "cylinder":
		lo, hi := math.Inf(-1), math.Inf(1)
		if oc.Minimum != nil {
			lo = *oc.Minimum
		}
		if oc.Maximum != nil {
			hi = *oc.Maximum
		}
		kind := geometry.Open
		if oc.Closed {
			kind = geometry.Closed
		}
		o = geometry.NewCylinder(kind, lo, hi)
	case "triangle":
		tri, err := buildTriangle(oc)
		if err != nil {
			return nil, err
		}
		o = tri
	case "obj":
		if oc.File == "" {
			return nil, fmt.Errorf("%w: obj object needs a file", ErrInvalidConfig)
		}
		path := oc.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.baseDir, path)
		}
		data, err := LoadOBJ(path)
		if err != nil {
			return nil, err
		}
		return data.ToGroup(mat)
	case "group":
		children := make([]*geometry.Object, len(oc.Children))
		for i, cc := range oc.Children {
			child, err := c.buildObject(cc)
			if err != nil {
				return nil, fmt.Errorf("child %d (%s): %w", i, cc.Kind, err)
			}
			children[i] = child
		}
		return geometry.NewGroup(children...)
	default:
		return nil, fmt.Errorf("%w: unknown object kind %q", ErrInvalidConfig, oc.Kind)
	}

	if mat != nil {
		o.SetMaterial(*mat)
	}
	return o, nil
}

func buildTriangle(oc ObjectConfig) (*geometry.Object, error) {
	if len(oc.Points) != 3 {
		return nil, fmt.Errorf("%w: triangle needs 3 points, got %d", ErrInvalidConfig, len(oc.Points))
	}
	p1, p2, p3 := point(oc.Points[0]), point(oc.Points[1]), point(oc.Points[2])

	switch len(oc.Normals) {
	case 0:
		return geometry.NewTriangle(p1, p2, p3)
	case 3:
		return geometry.NewSmoothTriangle(p1, p2, p3,
			vector(oc.Normals[0]), vector(oc.Normals[1]), vector(oc.Normals[2]))
	default:
		return nil, fmt.Errorf("%w: triangle needs 0 or 3 normals, got %d", ErrInvalidConfig, len(oc.Normals))
	}
}

func (mc *MaterialConfig) build() (material.Material, error) {
	var m material.Material
	switch mc.Base {
	case "", "default":
		m = material.Default()
	case "glass":
		m = material.NewGlass()
	default:
		return m, fmt.Errorf("%w: unknown material base %q", ErrInvalidConfig, mc.Base)
	}

	if mc.Color != nil {
		m = m.WithColor(color(*mc.Color))
	}
	if mc.Pattern != nil {
		if err := mc.Pattern.apply(&m); err != nil {
			return m, err
		}
	}

	overrides := []struct {
		value *float64
		field *float64
	}{
		{mc.Ambient, &m.Ambient},
		{mc.Diffuse, &m.Diffuse},
		{mc.Specular, &m.Specular},
		{mc.Shininess, &m.Shininess},
		{mc.Reflective, &m.Reflective},
		{mc.Transparency, &m.Transparency},
		{mc.RefractiveIndex, &m.RefractiveIndex},
	}
	for _, o := range overrides {
		if o.value != nil {
			*o.field = *o.value
		}
	}
	return m, nil
}

func (pc *PatternConfig) apply(m *material.Material) error {
	a, b := color(pc.A), color(pc.B)
	switch pc.Kind {
	case "stripes":
		m.Pattern = material.NewStripes(a, b)
	case "rings":
		m.Pattern = material.NewRings(a, b)
	case "gradient":
		m.Pattern = material.NewGradient(a, b)
	case "checkers":
		m.Pattern = material.NewCheckers(a, b)
	default:
		return fmt.Errorf("%w: unknown pattern %q", ErrInvalidConfig, pc.Kind)
	}

	if len(pc.Transform) > 0 {
		t, err := buildTransform(pc.Transform)
		if err != nil {
			return err
		}
		return m.SetPatternTransform(t)
	}
	return nil
}

// buildTransform chains the steps so the first listed is applied first
func buildTransform(steps []TransformConfig) (core.Matrix, error) {
	matrices := make([]core.Matrix, len(steps))
	for i, s := range steps {
		m, err := s.matrix()
		if err != nil {
			return core.Matrix{}, fmt.Errorf("transform %d: %w", i, err)
		}
		matrices[i] = m
	}
	return core.Chain(matrices...), nil
}

func (s TransformConfig) matrix() (core.Matrix, error) {
	v := s.Values
	want := func(n int) error {
		if len(v) != n {
			return fmt.Errorf("%w: %s takes %d values, got %d", ErrInvalidConfig, s.Op, n, len(v))
		}
		return nil
	}

	switch s.Op {
	case "translate":
		if err := want(3); err != nil {
			return core.Matrix{}, err
		}
		return core.Translation(v[0], v[1], v[2]), nil
	case "scale":
		if len(v) == 1 {
			return core.Scaling(v[0], v[0], v[0]), nil
		}
		if err := want(3); err != nil {
			return core.Matrix{}, err
		}
		return core.Scaling(v[0], v[1], v[2]), nil
	case "rotate_x", "rotate_y", "rotate_z":
		if err := want(1); err != nil {
			return core.Matrix{}, err
		}
		r := core.Radians(v[0])
		switch s.Op {
		case "rotate_x":
			return core.RotationX(r), nil
		case "rotate_y":
			return core.RotationY(r), nil
		default:
			return core.RotationZ(r), nil
		}
	case "shear":
		if err := want(6); err != nil {
			return core.Matrix{}, err
		}
		return core.Shearing(v[0], v[1], v[2], v[3], v[4], v[5]), nil
	default:
		return core.Matrix{}, fmt.Errorf("%w: unknown transform %q", ErrInvalidConfig, s.Op)
	}
}

func point(v [3]float64) core.Tuple4  { return core.Point(v[0], v[1], v[2]) }
func vector(v [3]float64) core.Tuple4 { return core.Vector(v[0], v[1], v[2]) }
func color(v [3]float64) core.Color   { return core.NewColor(v[0], v[1], v[2]) }
