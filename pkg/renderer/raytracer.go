package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Raytracer handles the rendering process
type Raytracer struct {
	world    *scene.World
	camera   *Camera
	maxDepth int
}

// NewRaytracer creates a new raytracer with the default recursion depth
func NewRaytracer(world *scene.World, camera *Camera) *Raytracer {
	return &Raytracer{
		world:    world,
		camera:   camera,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth updates the reflection and refraction budget. Negative
// values are treated as zero.
func (rt *Raytracer) SetMaxDepth(depth int) {
	rt.maxDepth = max(depth, 0)
}

// MaxDepth returns the reflection and refraction budget
func (rt *Raytracer) MaxDepth() int {
	return rt.maxDepth
}

// Render traces one ray through the center of every pixel, row by row
func (rt *Raytracer) Render() (*Canvas, RenderStats) {
	start := time.Now()
	logger := core.ComponentLogger("renderer")

	width, height := rt.camera.HSize(), rt.camera.VSize()
	canvas := NewCanvas(width, height)
	stats := RenderStats{TotalPixels: width * height, MaxDepth: rt.maxDepth}

	logger.Info("render started",
		"width", width,
		"height", height,
		"objects", len(rt.world.Objects),
		"lights", len(rt.world.Lights),
		"maxDepth", rt.maxDepth,
	)

	// Report roughly every tenth of the image
	progressStep := max(height/10, 1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ray := rt.camera.RayForPixel(x, y)
			color, hit := rt.trace(ray)
			if hit {
				stats.Hits++
			} else {
				stats.Misses++
			}
			canvas.Set(x, y, color)
		}
		if (y+1)%progressStep == 0 || y == height-1 {
			logger.Debug("render progress", "rows", y+1, "of", height)
		}
	}

	stats.Duration = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(canvas)

	logger.Info("render complete",
		"duration", stats.Duration,
		"hitRatio", stats.HitRatio(),
		"averageLuminance", stats.AverageLuminance,
	)
	return canvas, stats
}

// trace shades a primary ray and reports whether it struck anything
func (rt *Raytracer) trace(ray core.Ray) (core.Color, bool) {
	xs := rt.world.Intersect(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		return core.Black, false
	}
	return ShadeHit(rt.world, PrepareComputations(hit, ray, xs), rt.maxDepth), true
}

// Render renders the world as seen by the camera with the default depth
func Render(world *scene.World, camera *Camera) *Canvas {
	canvas, _ := NewRaytracer(world, camera).Render()
	return canvas
}
