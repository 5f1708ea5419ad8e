package renderer

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722, black 0: average 0.25
	c := NewCanvas(2, 2)
	c.Set(0, 0, core.NewColor(1, 0, 0))
	c.Set(1, 0, core.NewColor(0, 1, 0))
	c.Set(0, 1, core.NewColor(0, 0, 1))

	if got := CalculateAverageLuminance(c); !core.FloatEqual(got, 0.25) {
		t.Errorf("Expected average luminance 0.25, got %f", got)
	}
}

func TestCalculateAverageLuminance_Clamped(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, core.NewColor(4, 4, 4))
	if got := CalculateAverageLuminance(c); !core.FloatEqual(got, 1) {
		t.Errorf("Expected luminance 1, got %f", got)
	}
	if got := CalculateAverageLuminance(NewCanvas(0, 0)); got != 0 {
		t.Errorf("Empty canvas should have zero luminance, got %f", got)
	}
}

func TestRenderStats_HitRatio(t *testing.T) {
	if r := (RenderStats{}).HitRatio(); r != 0 {
		t.Errorf("Expected 0, got %f", r)
	}
	if r := (RenderStats{TotalPixels: 4, Hits: 1}).HitRatio(); r != 0.25 {
		t.Errorf("Expected 0.25, got %f", r)
	}
}
