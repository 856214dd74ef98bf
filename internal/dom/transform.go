package dom

import (
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Matrix2D is a 2x3 affine transform: the matrix
//
//	[ A C E ]
//	[ B D F ]
//
// applied as x' = A*x + C*y + E, y' = B*x + D*y + F.
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b, so that b nests inside a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Transform applies the matrix to a point.
func (m Matrix2D) Transform(x, y float64) (float64, float64) {
	return x*m.A + y*m.C + m.E, x*m.B + y*m.D + m.F
}

// TransformList is the composition of the matrices of a transform=
// attribute, in authored order. An unrecognized function terminates
// parsing; the matrices before it are kept.
type TransformList struct {
	Matrix Matrix2D
}

func (tl *TransformList) UnmarshalText(text []byte) error {
	tl.Matrix = parseTransform(string(text))
	return nil
}

func parseTransform(s string) Matrix2D {
	m := Identity

	v := scanValue(s)
	for {
		if v.typ != css.FunctionToken {
			return m
		}
		name := strings.TrimSuffix(v.val, "(")

		var args []float64
		for {
			v.next()
			if v.typ == css.RightParenthesisToken {
				v.next()
				break
			}
			n, ok := v.number()
			if !ok {
				return m
			}
			args = append(args, n)
		}

		op, ok := transformMatrix(name, args)
		if !ok {
			return m
		}
		m = m.Mult(op)
	}
}

func transformMatrix(name string, args []float64) (Matrix2D, bool) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return Matrix2D{}, false
		}
		return Matrix2D{args[0], args[1], args[2], args[3], args[4], args[5]}, true
	case "translate":
		switch len(args) {
		case 1:
			return Matrix2D{1, 0, 0, 1, args[0], 0}, true
		case 2:
			return Matrix2D{1, 0, 0, 1, args[0], args[1]}, true
		}
	case "scale":
		switch len(args) {
		case 1:
			return Matrix2D{args[0], 0, 0, args[0], 0, 0}, true
		case 2:
			return Matrix2D{args[0], 0, 0, args[1], 0, 0}, true
		}
	case "rotate":
		switch len(args) {
		case 1:
			sin, cos := math.Sincos(radians(args[0]))
			return Matrix2D{cos, sin, -sin, cos, 0, 0}, true
		case 3:
			sin, cos := math.Sincos(radians(args[0]))
			x, y := args[1], args[2]
			return Matrix2D{
				A: cos, B: sin, C: -sin, D: cos,
				E: -x*cos + y*sin + x,
				F: -x*sin - y*cos + y,
			}, true
		}
	case "skewX":
		if len(args) == 1 {
			return Matrix2D{1, 0, math.Tan(radians(args[0])), 1, 0, 0}, true
		}
	case "skewY":
		if len(args) == 1 {
			return Matrix2D{1, math.Tan(radians(args[0])), 0, 1, 0, 0}, true
		}
	}
	return Matrix2D{}, false
}

func radians(degrees float64) float64 {
	return degrees / 180 * math.Pi
}
