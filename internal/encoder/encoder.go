// Package encoder writes warped images to the supported output formats.
package encoder

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Encoder encodes an image to one output format.
type Encoder interface {
	// Format returns the canonical format name ("png", "jpeg", ...).
	Format() string

	// Encode converts the image to bytes. quality is 1-100 and ignored by
	// lossless formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available reports whether the encoder can run here. External tool
	// encoders depend on a binary in PATH.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string

	// Alpha reports whether the format keeps the transparent canvas area.
	Alpha() bool
}

// DefaultQuality is used when a caller passes a quality outside 1-100.
const DefaultQuality = 90

func clampQuality(q int) int {
	if q <= 0 || q > 100 {
		return DefaultQuality
	}
	return q
}

// Flatten composites img over an opaque background. Formats without an
// alpha channel receive the flattened copy so uncovered canvas area turns
// into the background instead of black.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
