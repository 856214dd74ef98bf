package svgflat

import "image/color"

// Color is a packed 32-bit ARGB paint value. The zero value is
// Transparent. Any color whose alpha byte is zero is treated as "no
// paint" by the emitter and the rasterizer.
type Color uint32

const (
	// Transparent is the explicit "no paint" value.
	Transparent Color = 0x00000000

	// LinearGradient marks a paint that was authored as url(#id) and
	// resolved to an element in the document. Gradients themselves are
	// not flattened; the marker lets the emitter suppress the
	// attribute. Its alpha byte is zero so it never paints.
	LinearGradient Color = 0x00000001
)

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xff)
}

// RGBA packs a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

func (c Color) Red() uint8   { return uint8(c >> 16) }
func (c Color) Green() uint8 { return uint8(c >> 8) }
func (c Color) Blue() uint8  { return uint8(c) }
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// WithAlpha returns c with its alpha byte replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00ffffff | Color(a)<<24
}

// IsTransparent reports whether the color paints nothing: the explicit
// sentinels and any fully transparent value.
func (c Color) IsTransparent() bool {
	return c.Alpha() == 0
}

// NRGBA converts the packed value for use with image/color consumers.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

// Segment is one entry of a shape's path tape. Coordinates are in
// device space: the flattener applies the current transformation
// matrix before a segment is appended.
type Segment interface {
	isSegment()
}

// Move begins a subpath at (X, Y).
type Move struct {
	X, Y float64
}

// Line draws a straight segment to (X, Y).
type Line struct {
	X, Y float64
}

// Bezier draws a cubic Bézier curve to (X, Y) with control points
// (X1, Y1) and (X2, Y2).
type Bezier struct {
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

// Close closes the current subpath.
type Close struct{}

func (Move) isSegment()   {}
func (Line) isSegment()   {}
func (Bezier) isSegment() {}
func (Close) isSegment()  {}

// Shape is one flattened element of a diagram: either a path tape or a
// positioned text run, never both.
type Shape struct {
	// Path holds the device-space tape for path shapes. It is nil for
	// text shapes.
	Path []Segment

	// Text holds the character data for text shapes. TextX and TextY
	// are the transformed anchor point.
	Text  string
	TextX float64
	TextY float64

	Fill   Color
	Stroke Color

	// StrokeWidth is the authored width scaled by (a+d)/2 of the
	// matrix in effect when the shape was created.
	StrokeWidth float64
}

// IsText reports whether the shape is a text run rather than a path.
func (s *Shape) IsText() bool {
	return s.Path == nil
}

// Diagram is the flattened, render-ready form of an SVG document: an
// ordered shape list plus the document dimensions in user units.
type Diagram struct {
	Shapes []Shape

	Width  int
	Height int

	// ErrorMessage describes the most recent recoverable SVG-level
	// problem, such as a url() reference to a missing id. ErrorLine is
	// always 0: source line positions are not tracked. Both are
	// informational; parsing continues past such problems.
	ErrorLine    int
	ErrorMessage string
}

func (d *Diagram) setError(msg string) {
	d.ErrorLine = 0
	d.ErrorMessage = msg
}
