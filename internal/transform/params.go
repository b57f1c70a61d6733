package transform

import (
	"fmt"
	"math"

	"github.com/AnyUserName/matstudio/internal/expr"
	"github.com/AnyUserName/matstudio/internal/matrix"
)

// canonicalTol bounds how far a matrix may stray from the shape produced by
// the forward builder and still count as an exact reverse extraction.
const canonicalTol = 1e-9

// Params are the semantic parameters of all three kinds. Values are not
// range-clamped.
type Params struct {
	ScaleX, ScaleY float64
	Degrees        float64
	ShearX, ShearY float64
}

// DefaultParams returns the neutral parameters: unit scale, no rotation and
// no shear.
func DefaultParams() Params {
	return Params{ScaleX: 1, ScaleY: 1}
}

// ScaleMatrix returns diag(sx, sy).
func ScaleMatrix(sx, sy float64) matrix.Mat2 {
	return matrix.Mat2{{sx, 0}, {0, sy}}
}

// RotationMatrix returns the counter-clockwise rotation by degrees (in a
// y-up frame).
func RotationMatrix(degrees float64) matrix.Mat2 {
	a := degrees * math.Pi / 180
	sin, cos := math.Sincos(a)
	return matrix.Mat2{{cos, -sin}, {sin, cos}}
}

// ShearMatrix returns [[1, hx], [hy, 1]].
func ShearMatrix(hx, hy float64) matrix.Mat2 {
	return matrix.Mat2{{1, hx}, {hy, 1}}
}

// Matrix builds the 2x2 matrix of kind k from p.
func (p Params) Matrix(k Kind) matrix.Mat2 {
	switch k {
	case Scale:
		return ScaleMatrix(p.ScaleX, p.ScaleY)
	case Rotation:
		return RotationMatrix(p.Degrees)
	case Shear:
		return ShearMatrix(p.ShearX, p.ShearY)
	}
	return matrix.Identity2()
}

// Set builds the matrices of all three kinds.
func (p Params) Set() Set {
	var s Set
	for _, k := range Kinds {
		s[k] = p.Matrix(k)
	}
	return s
}

// Set holds one 2x2 matrix per kind, indexed by Kind.
type Set [3]matrix.Mat2

// IdentitySet returns a Set with every kind at identity.
func IdentitySet() Set {
	return Set{matrix.Identity2(), matrix.Identity2(), matrix.Identity2()}
}

// With returns a copy of s with kind k replaced by m.
func (s Set) With(k Kind, m matrix.Mat2) Set {
	s[k] = m
	return s
}

// ExtractScale reads the scale factors off the diagonal. exact is false when
// m has off-diagonal terms, in which case the values are only a best fit.
func ExtractScale(m matrix.Mat2) (sx, sy float64, exact bool) {
	exact = math.Abs(m[0][1]) <= canonicalTol && math.Abs(m[1][0]) <= canonicalTol
	return m[0][0], m[1][1], exact
}

// ExtractRotation recovers the angle in degrees via atan2(m10, m00). exact
// is false unless m is a pure rotation.
func ExtractRotation(m matrix.Mat2) (degrees float64, exact bool) {
	degrees = math.Atan2(m[1][0], m[0][0]) * 180 / math.Pi
	exact = math.Abs(m[0][0]-m[1][1]) <= canonicalTol &&
		math.Abs(m[0][1]+m[1][0]) <= canonicalTol &&
		math.Abs(m[0][0]*m[0][0]+m[1][0]*m[1][0]-1) <= canonicalTol
	return degrees, exact
}

// ExtractShear reads the shear factors off the anti-diagonal. exact is
// false unless both diagonal entries are 1.
func ExtractShear(m matrix.Mat2) (hx, hy float64, exact bool) {
	exact = math.Abs(m[0][0]-1) <= canonicalTol && math.Abs(m[1][1]-1) <= canonicalTol
	return m[0][1], m[1][0], exact
}

// Sync returns p with the parameters of kind k replaced by the best-fit
// values extracted from m. The boolean reports whether m had the exact
// shape the forward builder produces; when it is false the returned
// parameters will not reproduce m.
func (p Params) Sync(k Kind, m matrix.Mat2) (Params, bool) {
	var exact bool
	switch k {
	case Scale:
		p.ScaleX, p.ScaleY, exact = ExtractScale(m)
	case Rotation:
		p.Degrees, exact = ExtractRotation(m)
	case Shear:
		p.ShearX, p.ShearY, exact = ExtractShear(m)
	}
	return p, exact
}

// ParamText carries parameters as unevaluated expressions. Empty fields
// keep the neutral value.
type ParamText struct {
	ScaleX, ScaleY string
	Degrees        string
	ShearX, ShearY string
}

// Eval evaluates every field. The first failure is returned wrapped around
// the underlying *expr.ParseError.
func (t ParamText) Eval() (Params, error) {
	p := DefaultParams()
	fields := []struct {
		name string
		text string
		dst  *float64
	}{
		{"scale x", t.ScaleX, &p.ScaleX},
		{"scale y", t.ScaleY, &p.ScaleY},
		{"rotation", t.Degrees, &p.Degrees},
		{"shear x", t.ShearX, &p.ShearX},
		{"shear y", t.ShearY, &p.ShearY},
	}
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		v, err := expr.Eval(f.text)
		if err != nil {
			return Params{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return p, nil
}

// ParseMat2 evaluates a manually entered 2x2 matrix of expressions.
func ParseMat2(cells [2][2]string) (matrix.Mat2, error) {
	var m matrix.Mat2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			v, err := expr.Eval(cells[r][c])
			if err != nil {
				return matrix.Mat2{}, fmt.Errorf("entry [%d][%d]: %w", r, c, err)
			}
			m[r][c] = v
		}
	}
	return m, nil
}
