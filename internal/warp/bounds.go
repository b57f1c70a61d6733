package warp

import (
	"math"

	"github.com/AnyUserName/matstudio/internal/matrix"
)

// PadFraction is the margin added on every side of the transformed
// bounding box, as a fraction of the larger source dimension.
const PadFraction = 0.25

// maxSide caps a canvas side before it is converted to int.
const maxSide = math.MaxInt32

// Canvas is the output size for a transform plus the padded minimum corner
// that must be moved to the origin.
type Canvas struct {
	Width, Height int
	MinX, MinY    float64
}

// Offset returns the translation that maps (MinX, MinY) to (0, 0).
func (c Canvas) Offset() matrix.Mat3 {
	return matrix.Translate(-c.MinX, -c.MinY)
}

// Pixels returns Width*Height.
func (c Canvas) Pixels() int64 {
	return int64(c.Width) * int64(c.Height)
}

// Bounds projects the corners of a w x h source through full and returns
// the padded axis-aligned box around them.
func Bounds(w, h int, full matrix.Mat3) Canvas {
	fw, fh := float64(w), float64(h)
	corners := [4][2]float64{{0, 0}, {fw, 0}, {fw, fh}, {0, fh}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := full.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	pad := math.Max(fw, fh) * PadFraction
	minX, minY = minX-pad, minY-pad
	maxX, maxY = maxX+pad, maxY+pad

	return Canvas{
		Width:  side(maxX - minX),
		Height: side(maxY - minY),
		MinX:   minX,
		MinY:   minY,
	}
}

func side(extent float64) int {
	s := math.Ceil(extent)
	if s > maxSide || math.IsNaN(s) {
		return maxSide
	}
	return int(s)
}
