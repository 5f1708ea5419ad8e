package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Canvas is a dense grid of linear colors. Values are not clamped.
type Canvas struct {
	width  int
	height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// At returns the color at (x, y), or black outside the canvas
func (c *Canvas) At(x, y int) core.Color {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.pixels[y*c.width+x]
}

// Set writes the color at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) Set(x, y int, col core.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.width+x] = col
}

// ToImage converts the canvas to 8-bit RGBA with clamped rounding
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r, g, b := c.At(x, y).RGB8()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
