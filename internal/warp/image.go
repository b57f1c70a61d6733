// Package warp computes the output canvas for an affine transform and
// resamples a source image into it by inverse mapping with bilinear
// interpolation.
//
// Every entry point is a pure function of its arguments: the source is
// never modified and each call allocates its own output buffer.
package warp

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrEmptySource is returned for images with a zero dimension or a pixel
// buffer that does not match them.
var ErrEmptySource = errors.New("source image is empty")

// Image is a tightly packed, row-major RGBA buffer with 8 bits per channel.
// Channels are not premultiplied by alpha.
type Image struct {
	Width, Height int
	Pix           []uint8
}

// NewImage allocates a fully transparent w x h image.
func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
}

// FromImage copies any image.Image into a tightly packed buffer.
func FromImage(img image.Image) *Image {
	n := imaging.Clone(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	out := NewImage(w, h)
	for y := 0; y < h; y++ {
		copy(out.Pix[y*w*4:(y+1)*w*4], n.Pix[y*n.Stride:y*n.Stride+w*4])
	}
	return out
}

// NRGBA wraps the buffer as an *image.NRGBA. The pixels are shared, not
// copied.
func (im *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    im.Pix,
		Stride: im.Width * 4,
		Rect:   image.Rect(0, 0, im.Width, im.Height),
	}
}

// At returns the RGBA channels of pixel (x, y).
func (im *Image) At(x, y int) [4]uint8 {
	i := (y*im.Width + x) * 4
	return [4]uint8{im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3]}
}

// Set writes the RGBA channels of pixel (x, y).
func (im *Image) Set(x, y int, c [4]uint8) {
	i := (y*im.Width + x) * 4
	copy(im.Pix[i:i+4], c[:])
}

// Opaque reports whether every pixel has alpha 255.
func (im *Image) Opaque() bool {
	for i := 3; i < len(im.Pix); i += 4 {
		if im.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// Validate checks the dimensions against the buffer length.
func (im *Image) Validate() error {
	if im == nil || im.Width <= 0 || im.Height <= 0 {
		return ErrEmptySource
	}
	if want := im.Width * im.Height * 4; len(im.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrEmptySource, im.Width, im.Height, want, len(im.Pix))
	}
	return nil
}
