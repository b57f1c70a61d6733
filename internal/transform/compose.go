package transform

import (
	"github.com/AnyUserName/matstudio/internal/matrix"
)

// Linear multiplies the matrices of s in order o. The first kind in o is
// the rightmost factor, so it acts on a point first.
func Linear(o Order, s Set) matrix.Mat3 {
	combined := matrix.Identity()
	for _, k := range o {
		combined = matrix.Multiply(matrix.Embed(s[k]), combined)
	}
	return combined
}

// Compose returns fromOrigin · Linear(o, s) · toOrigin for a width x height
// image, so every linear transform pivots on the image midpoint.
func Compose(o Order, s Set, width, height int) matrix.Mat3 {
	cx, cy := float64(width)/2, float64(height)/2
	toOrigin := matrix.Translate(-cx, -cy)
	fromOrigin := matrix.Translate(cx, cy)
	return matrix.Multiply(fromOrigin, matrix.Multiply(Linear(o, s), toOrigin))
}
