package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for cameras that cannot produce an image
var ErrInvalidCamera = errors.New("invalid camera")

// Camera maps pixels to world-space rays. The canvas sits one unit in
// front of the eye.
type Camera struct {
	hsize       int
	vsize       int
	fieldOfView float64

	halfWidth  float64
	halfHeight float64
	pixelSize  float64

	transform core.Matrix // World -> camera
	inverse   core.Matrix // Camera -> world
	origin    core.Tuple4 // Eye position in world space
}

// NewCamera creates a camera producing hsize x vsize pixels with the given
// horizontal field of view in radians
func NewCamera(hsize, vsize int, fieldOfView float64) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidCamera, hsize, vsize)
	}
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("%w: field of view %f", ErrInvalidCamera, fieldOfView)
	}

	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
		origin:      core.Point(0, 0, 0),
	}

	// Fit the canvas to the longer side
	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c, nil
}

// SetTransform orients the camera. The transform is usually built with
// core.ViewTransform.
func (c *Camera) SetTransform(m core.Matrix) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("camera transform: %w", err)
	}
	c.transform = m
	c.inverse = inv
	c.origin = inv.MultiplyTuple(core.Point(0, 0, 0))
	return nil
}

// Transform returns the world-to-camera transform
func (c *Camera) Transform() core.Matrix { return c.transform }

// HSize returns the image width in pixels
func (c *Camera) HSize() int { return c.hsize }

// VSize returns the image height in pixels
func (c *Camera) VSize() int { return c.vsize }

// FieldOfView returns the field of view in radians
func (c *Camera) FieldOfView() float64 { return c.fieldOfView }

// HalfWidth returns half the canvas width at one unit from the eye
func (c *Camera) HalfWidth() float64 { return c.halfWidth }

// HalfHeight returns half the canvas height at one unit from the eye
func (c *Camera) HalfHeight() float64 { return c.halfHeight }

// PixelSize returns the world-space size of one pixel on the canvas
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// RayForPixel returns the ray from the eye through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	// Offset from the canvas edge to the pixel center
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	direction := pixel.Subtract(c.origin).Normalize()
	return core.NewRay(c.origin, direction)
}
