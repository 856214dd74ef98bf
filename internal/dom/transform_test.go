package dom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertMatrix(t *testing.T, want, got Matrix2D) {
	t.Helper()
	assert.InDelta(t, want.A, got.A, 1e-9)
	assert.InDelta(t, want.B, got.B, 1e-9)
	assert.InDelta(t, want.C, got.C, 1e-9)
	assert.InDelta(t, want.D, got.D, 1e-9)
	assert.InDelta(t, want.E, got.E, 1e-9)
	assert.InDelta(t, want.F, got.F, 1e-9)
}

func TestTransformMatrixLiteral(t *testing.T) {
	assertMatrix(t, Matrix2D{1, 2, 3, 4, 5, 6}, parseTransform("matrix(1 2 3 4 5 6)"))
}

func TestTransformTranslate(t *testing.T) {
	assertMatrix(t, Matrix2D{1, 0, 0, 1, 5, 7}, parseTransform("translate(5,7)"))
	assertMatrix(t, Matrix2D{1, 0, 0, 1, 5, 0}, parseTransform("translate(5)"))
}

func TestTransformScale(t *testing.T) {
	assertMatrix(t, Matrix2D{2, 0, 0, 3, 0, 0}, parseTransform("scale(2 3)"))
	assertMatrix(t, Matrix2D{2, 0, 0, 2, 0, 0}, parseTransform("scale(2)"))
}

func TestTransformRotate(t *testing.T) {
	m := parseTransform("rotate(90)")
	assertMatrix(t, Matrix2D{0, 1, -1, 0, 0, 0}, m)

	// Rotation about a point maps the point to itself.
	m = parseTransform("rotate(90 10 20)")
	x, y := m.Transform(10, 20)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 20.0, y, 1e-9)
}

func TestTransformSkew(t *testing.T) {
	assertMatrix(t, Matrix2D{1, 0, math.Tan(math.Pi / 4), 1, 0, 0}, parseTransform("skewX(45)"))
	assertMatrix(t, Matrix2D{1, math.Tan(math.Pi / 4), 0, 1, 0, 0}, parseTransform("skewY(45)"))
}

func TestTransformComposition(t *testing.T) {
	// translate(5,5) then scale(2): the scale nests inside the
	// translation.
	m := parseTransform("translate(5,5) scale(2)")
	x, y := m.Transform(1, 1)
	assert.InDelta(t, 7.0, x, 1e-9)
	assert.InDelta(t, 7.0, y, 1e-9)
}

func TestTransformUnknownTerminates(t *testing.T) {
	// The unrecognized function ends parsing; the leading translate is
	// kept.
	m := parseTransform("translate(3) frobnicate(7) scale(2)")
	assertMatrix(t, Matrix2D{1, 0, 0, 1, 3, 0}, m)
}

func TestTransformBadArityTerminates(t *testing.T) {
	m := parseTransform("matrix(1 2 3) translate(5)")
	assertMatrix(t, Identity, m)
}

func TestMatrixMult(t *testing.T) {
	translate := Matrix2D{1, 0, 0, 1, 10, 20}
	scale := Matrix2D{2, 0, 0, 2, 0, 0}
	x, y := translate.Mult(scale).Transform(3, 4)
	assert.InDelta(t, 16.0, x, 1e-9)
	assert.InDelta(t, 28.0, y, 1e-9)
}
