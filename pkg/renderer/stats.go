package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	Hits             int           // Primary rays that struck an object
	Misses           int           // Primary rays that escaped the scene
	MaxDepth         int           // Reflection and refraction budget per pixel
	AverageLuminance float64       // Mean Rec. 709 luminance of the clamped image
	Duration         time.Duration // Wall time of the render
}

// HitRatio returns the fraction of primary rays that struck an object
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean luminance of the canvas with
// every channel clamped to [0, 1]
func CalculateAverageLuminance(canvas *Canvas) float64 {
	n := canvas.Width() * canvas.Height()
	if n == 0 {
		return 0
	}
	total := 0.0
	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			c := canvas.At(x, y).Clamp(0, 1)
			total += 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
		}
	}
	return total / float64(n)
}
