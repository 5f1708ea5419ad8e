package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	Inside       bool           `json:"inside"`
	Color        string         `json:"color,omitempty"` // Shaded pixel as #rrggbb
	Properties   map[string]any `json:"properties,omitempty"`
}

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit   bool
	Comps renderer.Computations
	Color core.Color
}

// inspectPixel casts the primary ray for a pixel and shades its hit
func inspectPixel(world *scene.World, camera *renderer.Camera, depth, pixelX, pixelY int) InspectResult {
	ray := camera.RayForPixel(pixelX, pixelY)
	xs := world.Intersect(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		return InspectResult{}
	}
	comps := renderer.PrepareComputations(hit, ray, xs)
	return InspectResult{
		Hit:   true,
		Comps: comps,
		Color: renderer.ShadeHit(world, comps, depth),
	}
}

// extractMaterialInfo lists the Phong and optical parameters of a material
func extractMaterialInfo(mat material.Material, objectPoint core.Tuple4) map[string]any {
	return map[string]any{
		"color":           hexColor(mat.ColorAt(objectPoint)),
		"pattern":         fmt.Sprintf("%T", mat.Pattern),
		"ambient":         mat.Ambient,
		"diffuse":         mat.Diffuse,
		"specular":        mat.Specular,
		"shininess":       mat.Shininess,
		"reflective":      mat.Reflective,
		"transparency":    mat.Transparency,
		"refractiveIndex": mat.RefractiveIndex,
	}
}

// extractGeometryInfo names the shape and its defining parameters
func extractGeometryInfo(obj *geometry.Object) (string, map[string]any) {
	properties := map[string]any{"bounds": boundsInfo(obj.LocalBounds())}

	switch geom := obj.Shape().(type) {
	case *geometry.Sphere:
		return "sphere", properties
	case *geometry.Plane:
		return "plane", properties
	case *geometry.Cube:
		return "cube", properties
	case *geometry.Cylinder:
		properties["minimum"] = jsonFloat(geom.Minimum)
		properties["maximum"] = jsonFloat(geom.Maximum)
		properties["kind"] = geom.Kind.String()
		return "cylinder", properties
	case *geometry.SmoothTriangle:
		properties["vertices"] = [][3]float64{tuple3(geom.P1), tuple3(geom.P2), tuple3(geom.P3)}
		return "smooth_triangle", properties
	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{tuple3(geom.P1), tuple3(geom.P2), tuple3(geom.P3)}
		return "triangle", properties
	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, preset, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: x coordinate", errBadParam))
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: y coordinate", errBadParam))
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: pixel coordinates out of bounds", errBadParam))
		return
	}

	camera, err := newCamera(preset.View, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := inspectPixel(preset.World, camera, req.MaxDepth, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	c := result.Comps
	geometryType, geometryProps := extractGeometryInfo(c.Object)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        tuple3(c.Point),
		Normal:       tuple3(c.NormalV),
		Distance:     c.T,
		Inside:       c.Inside,
		Color:        hexColor(result.Color),
		Properties: map[string]any{
			"material": extractMaterialInfo(c.Object.Material(), c.ObjectPoint),
			"geometry": geometryProps,
		},
	})
}

func tuple3(t core.Tuple4) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

func boundsInfo(b core.Bounds) map[string]any {
	if !b.IsFinite() {
		return map[string]any{"finite": false}
	}
	return map[string]any{"finite": true, "min": tuple3(b.Min), "max": tuple3(b.Max)}
}

// jsonFloat spells out infinities, which JSON numbers cannot hold
func jsonFloat(v float64) any {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return v
}

func hexColor(c core.Color) string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
