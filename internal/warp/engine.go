package warp

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/matstudio/internal/matrix"
	"github.com/AnyUserName/matstudio/internal/transform"
)

// DefaultMaxPixels bounds the output canvas when Engine.MaxPixels is zero.
// It admits a 45 degree rotation of a 100 MP photo (about 230 MP of canvas)
// while still stopping near-singular matrices that blow a canvas up to
// billions of pixels.
const DefaultMaxPixels = 1 << 28

var (
	// ErrNonFinite is returned for a combined matrix holding NaN or Inf.
	ErrNonFinite = errors.New("combined matrix has non-finite entries")

	// ErrCanvasTooLarge is returned when the output canvas would exceed
	// the engine's pixel limit.
	ErrCanvasTooLarge = errors.New("output canvas too large")

	// ErrInvalidCanvas is returned by Resample for a non-positive output
	// size.
	ErrInvalidCanvas = errors.New("output canvas must be at least 1x1")
)

// Engine holds execution settings only; it carries no image state and the
// zero value is ready to use.
type Engine struct {
	// Workers is the number of goroutines used by Resample. Values below
	// 2 resample on the calling goroutine.
	Workers int

	// MaxPixels caps the output canvas. Zero means DefaultMaxPixels.
	MaxPixels int64
}

// Result is the output of one transform application.
type Result struct {
	Image *Image

	// Matrix is the final combined matrix, already translated so the
	// padded bounding box starts at the canvas origin.
	Matrix matrix.Mat3

	// Centered is Matrix before the canvas offset was folded in.
	Centered matrix.Mat3

	Canvas Canvas

	// Degenerate is set when Matrix was not invertible; Image is then
	// fully transparent.
	Degenerate bool
}

// Apply composes s in order o about the center of src and resamples src
// through the result.
func Apply(src *Image, o transform.Order, s transform.Set) (*Result, error) {
	return Engine{}.Apply(src, o, s)
}

// ApplyMatrix resamples src through a caller-supplied centered matrix,
// bypassing composition.
func ApplyMatrix(src *Image, full matrix.Mat3) (*Result, error) {
	return Engine{}.ApplyMatrix(src, full)
}

// Apply is the package-level Apply using e's settings.
func (e Engine) Apply(src *Image, o transform.Order, s transform.Set) (*Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return e.ApplyMatrix(src, transform.Compose(o, s, src.Width, src.Height))
}

// ApplyMatrix is the package-level ApplyMatrix using e's settings.
func (e Engine) ApplyMatrix(src *Image, full matrix.Mat3) (*Result, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !full.IsFinite() {
		return nil, ErrNonFinite
	}

	canvas, err := e.Canvas(src.Width, src.Height, full)
	if err != nil {
		return nil, err
	}

	final := matrix.Multiply(canvas.Offset(), full)
	img, degenerate, err := e.Resample(src, final, canvas.Width, canvas.Height)
	if err != nil {
		return nil, err
	}
	return &Result{
		Image:      img,
		Matrix:     final,
		Centered:   full,
		Canvas:     canvas,
		Degenerate: degenerate,
	}, nil
}

// Canvas is Bounds checked against e's pixel limit.
func (e Engine) Canvas(w, h int, full matrix.Mat3) (Canvas, error) {
	canvas := Bounds(w, h, full)
	if limit := e.maxPixels(); canvas.Pixels() > limit {
		return Canvas{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrCanvasTooLarge, canvas.Width, canvas.Height, limit)
	}
	return canvas, nil
}

func (e Engine) workers() int {
	if e.Workers < 1 {
		return 1
	}
	return e.Workers
}

func (e Engine) maxPixels() int64 {
	if e.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return e.MaxPixels
}
