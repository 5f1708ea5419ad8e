package output

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for image formats with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatPPM  Format = "ppm"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatPNG, FormatPPM, FormatBMP, FormatTIFF}
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat matches a format name case-insensitively. "tif" is accepted
// for TIFF.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "ppm":
		return FormatPPM, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes the canvas to w in the given format
func Encode(w io.Writer, canvas *renderer.Canvas, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, canvas)
	case FormatPNG:
		if err := png.Encode(w, canvas.ToImage()); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, canvas.ToImage()); err != nil {
			return fmt.Errorf("encode BMP: %w", err)
		}
	case FormatTIFF:
		if err := tiff.Encode(w, canvas.ToImage(), &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Save writes the canvas to path in the format named by its extension
func Save(path string, canvas *renderer.Canvas) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := Encode(f, canvas, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
