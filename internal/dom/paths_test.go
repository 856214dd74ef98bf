package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoveLine(t *testing.T) {
	commands := ParsePathCommands("M 10 10 L 20,20 30 40")
	require.Len(t, commands, 2)

	move, ok := commands[0].(*MoveTo)
	require.True(t, ok)
	assert.True(t, move.Abs)
	assert.Equal(t, []Point{{X: 10, Y: 10}}, move.Points)

	line, ok := commands[1].(*LineTo)
	require.True(t, ok)
	assert.Equal(t, []Point{{X: 20, Y: 20}, {X: 30, Y: 40}}, line.Points)
}

func TestParseMoveImplicitLines(t *testing.T) {
	commands := ParsePathCommands("m 1 2 3 4 5 6")
	require.Len(t, commands, 1)

	move, ok := commands[0].(*MoveTo)
	require.True(t, ok)
	assert.False(t, move.Abs)
	assert.Len(t, move.Points, 3)
}

func TestParseHorizontalVertical(t *testing.T) {
	commands := ParsePathCommands("M0 0 H 10 20 V 5")
	require.Len(t, commands, 3)

	h, ok := commands[1].(*HLineTo)
	require.True(t, ok)
	assert.True(t, h.Abs)
	assert.Equal(t, []float64{10, 20}, h.Coords)

	v, ok := commands[2].(*VLineTo)
	require.True(t, ok)
	assert.Equal(t, []float64{5}, v.Coords)
}

func TestParseCubic(t *testing.T) {
	commands := ParsePathCommands("M0 0 C 1 2 3 4 5 6 7 8 9 10 11 12")
	require.Len(t, commands, 2)

	c, ok := commands[1].(*CubicBezier)
	require.True(t, ok)
	assert.False(t, c.Smooth)
	require.Len(t, c.Curves, 2)
	assert.Equal(t, CubicCurve{X1: 1, Y1: 2, X2: 3, Y2: 4, To: Point{X: 5, Y: 6}}, c.Curves[0])
	assert.Equal(t, CubicCurve{X1: 7, Y1: 8, X2: 9, Y2: 10, To: Point{X: 11, Y: 12}}, c.Curves[1])
}

func TestParseSmoothCubic(t *testing.T) {
	commands := ParsePathCommands("M0 0 S 1 2 3 4")
	require.Len(t, commands, 2)

	s, ok := commands[1].(*CubicBezier)
	require.True(t, ok)
	assert.True(t, s.Smooth)
	require.Len(t, s.Curves, 1)
	assert.Equal(t, CubicCurve{X2: 1, Y2: 2, To: Point{X: 3, Y: 4}}, s.Curves[0])
}

func TestParseQuadratic(t *testing.T) {
	commands := ParsePathCommands("M0 0 q 10,0 20,10")
	require.Len(t, commands, 2)

	q, ok := commands[1].(*QuadraticBezier)
	require.True(t, ok)
	assert.False(t, q.Abs)
	assert.False(t, q.Smooth)
	require.Len(t, q.Curves, 1)
	assert.Equal(t, QuadCurve{X1: 10, Y1: 0, To: Point{X: 20, Y: 10}}, q.Curves[0])
}

func TestParseSmoothQuadratic(t *testing.T) {
	commands := ParsePathCommands("M0 0 T 30 40 50 60")
	require.Len(t, commands, 2)

	q, ok := commands[1].(*QuadraticBezier)
	require.True(t, ok)
	assert.True(t, q.Smooth)
	require.Len(t, q.Curves, 2)
	assert.Equal(t, Point{X: 30, Y: 40}, q.Curves[0].To)
}

func TestParseClose(t *testing.T) {
	commands := ParsePathCommands("M0 0 L1 1 z")
	require.Len(t, commands, 3)
	_, ok := commands[2].(*ClosePath)
	assert.True(t, ok)
}

func TestParseSubpathAfterClose(t *testing.T) {
	commands := ParsePathCommands("M0 0 L1 0 z M5 5 L6 5 z")
	require.Len(t, commands, 6)
	_, ok := commands[3].(*MoveTo)
	assert.True(t, ok)
}

func TestParseArc(t *testing.T) {
	commands := ParsePathCommands("M0 0 A 25 25 -30 0 1 50 -25")
	require.Len(t, commands, 2)

	a, ok := commands[1].(*EllipticalArc)
	require.True(t, ok)
	require.Len(t, a.Args, 1)
	arc := a.Args[0]
	assert.Equal(t, 25.0, arc.Rx)
	assert.Equal(t, -30.0, arc.Rotation)
	assert.False(t, arc.LargeArc)
	assert.True(t, arc.Sweep)
	assert.Equal(t, Point{X: 50, Y: -25}, arc.To)
}

func TestParseArcPackedFlags(t *testing.T) {
	// Flags are single characters and need no separator.
	commands := ParsePathCommands("M0 0 a10 10 0 0150 10")
	require.Len(t, commands, 2)

	a := commands[1].(*EllipticalArc)
	require.Len(t, a.Args, 1)
	assert.False(t, a.Args[0].LargeArc)
	assert.True(t, a.Args[0].Sweep)
	assert.Equal(t, Point{X: 50, Y: 10}, a.Args[0].To)
}

func TestParseKeepsPrefixOnGarbage(t *testing.T) {
	commands := ParsePathCommands("M 10 10 L 20 20 ! 30 30")
	require.Len(t, commands, 2)
}

func TestParseTruncatedCommand(t *testing.T) {
	// The dangling coordinate keeps the complete pairs before it.
	commands := ParsePathCommands("M 0 0 L 10 10 20")
	require.Len(t, commands, 2)
	line := commands[1].(*LineTo)
	assert.Equal(t, []Point{{X: 10, Y: 10}}, line.Points)
}

func TestParseTruncatedGroup(t *testing.T) {
	// One complete triplet; the second is cut short and dropped.
	commands := ParsePathCommands("M0 0 C 1 2 3 4 5 6 7 8")
	require.Len(t, commands, 2)
	c := commands[1].(*CubicBezier)
	require.Len(t, c.Curves, 1)
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, ParsePathCommands(""))
	assert.Empty(t, ParsePathCommands("   "))
}

func TestParseDottedNumbers(t *testing.T) {
	// A second dot starts a new coordinate.
	commands := ParsePathCommands("M 10.5.5 L.5 .25")
	require.Len(t, commands, 2)
	move := commands[0].(*MoveTo)
	assert.Equal(t, []Point{{X: 10.5, Y: 0.5}}, move.Points)
	line := commands[1].(*LineTo)
	assert.Equal(t, []Point{{X: 0.5, Y: 0.25}}, line.Points)
}

func TestParsePoints(t *testing.T) {
	points := ParsePoints("0,0 10 0, 10,10")
	assert.Equal(t, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, points)

	points = ParsePoints("1,2 3,oops")
	assert.Equal(t, []Point{{X: 1, Y: 2}}, points)
}
