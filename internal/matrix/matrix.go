// Package matrix implements the 2x2 linear and 2x3 affine matrices used by
// the transform engine.
//
// Mat3 is a 3x3 homogeneous affine matrix whose bottom row is always
// [0 0 1]. Only the top two rows are stored, laid out like
// golang.org/x/image/math/f64.Aff3:
//
//	| m[0] m[1] m[2] |
//	| m[3] m[4] m[5] |
//	|  0    0    1   |
//
// All functions are pure; matrices are values and are never mutated in place.
package matrix

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

// DegenerateEpsilon is the determinant magnitude below which a matrix is
// treated as not invertible.
const DegenerateEpsilon = 1e-12

// ErrDegenerate is returned by Invert when the linear part of the matrix
// has a (near-)zero determinant.
var ErrDegenerate = errors.New("matrix is degenerate (determinant is zero)")

// Mat2 is a 2x2 linear map, indexed [row][col].
type Mat2 [2][2]float64

// Mat3 is an affine transform stored as the top two rows of a 3x3 matrix.
type Mat3 f64.Aff3

// Identity2 returns the 2x2 identity.
func Identity2() Mat2 {
	return Mat2{{1, 0}, {0, 1}}
}

// Identity returns the affine identity.
func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0}
}

// Translate returns a pure translation by (tx, ty).
func Translate(tx, ty float64) Mat3 {
	return Mat3{1, 0, tx, 0, 1, ty}
}

// Embed places m in the top-left block of an affine matrix with zero
// translation.
func Embed(m Mat2) Mat3 {
	return Mat3{
		m[0][0], m[0][1], 0,
		m[1][0], m[1][1], 0,
	}
}

// Multiply returns the product a·b. Applied to a point, b acts first.
func Multiply(a, b Mat3) Mat3 {
	return Mat3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Invert returns the inverse of an affine matrix. It returns ErrDegenerate
// when |det| of the linear part is below DegenerateEpsilon.
func Invert(m Mat3) (Mat3, error) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]

	det := a*e - b*d
	if math.Abs(det) < DegenerateEpsilon {
		return Mat3{}, ErrDegenerate
	}
	inv := 1 / det
	return Mat3{
		e * inv, -b * inv, (b*f - c*e) * inv,
		-d * inv, a * inv, (c*d - a*f) * inv,
	}, nil
}

// Apply maps the point (x, y) through m.
func (m Mat3) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Linear returns the 2x2 linear part of m.
func (m Mat3) Linear() Mat2 {
	return Mat2{{m[0], m[1]}, {m[3], m[4]}}
}

// Determinant returns the determinant of the linear part.
func (m Mat3) Determinant() float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Rows expands m to a full 3x3 matrix including the implicit bottom row.
func (m Mat3) Rows() [3][3]float64 {
	return [3][3]float64{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
		{0, 0, 1},
	}
}

// Aff3 returns m as an x/image affine matrix.
func (m Mat3) Aff3() f64.Aff3 {
	return f64.Aff3(m)
}

// IsFinite reports whether every stored entry is a finite number.
func (m Mat3) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every entry of m is within tol of o.
func (m Mat3) ApproxEqual(o Mat3, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

// IsTranslation reports whether the linear part of m is the identity
// within tol.
func (m Mat3) IsTranslation(tol float64) bool {
	return math.Abs(m[0]-1) <= tol && math.Abs(m[1]) <= tol &&
		math.Abs(m[3]) <= tol && math.Abs(m[4]-1) <= tol
}

// Mul returns the 2x2 product a·b.
func (a Mat2) Mul(b Mat2) Mat2 {
	return Mat2{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}
