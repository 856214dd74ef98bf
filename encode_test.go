package svgflat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEnvelope(t *testing.T) {
	d := &Diagram{Width: 40, Height: 30}
	out := string(d.Encode())

	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n"))
	assert.Contains(t, out, "<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\"\n\"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n")
	assert.Contains(t, out, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"40px\" height=\"30px\" viewbox=\"0 0 40 30\">\n")
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestEncodePath(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}
	d.Shapes = append(d.Shapes, Shape{
		Path: []Segment{
			Move{X: 1, Y: 2},
			Line{X: 3, Y: 4},
			Bezier{X1: 1, Y1: 1, X2: 2, Y2: 2, X: 5, Y: 6},
			Close{},
		},
		Fill:   RGB(0xff, 0, 0),
		Stroke: Transparent,
	})

	out := string(d.Encode())
	assert.Contains(t, out, "<path fill=\"#ff0000\" d=\"M 1 2 L 3 4 C 1 1 2 2 5 6 Z \"/>\n")
	assert.NotContains(t, out, "stroke")
}

func TestEncodeStroke(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}
	d.Shapes = append(d.Shapes, Shape{
		Path:        []Segment{Move{X: 0, Y: 0}, Line{X: 1, Y: 1}},
		Fill:        Transparent,
		Stroke:      RGB(0, 0, 0xff),
		StrokeWidth: 2.5,
	})

	out := string(d.Encode())
	assert.Contains(t, out, "stroke=\"#0000ff\" stroke-width=\"2.5\" ")
	assert.NotContains(t, out, "fill=")
}

func TestEncodeOpacity(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}
	d.Shapes = append(d.Shapes, Shape{
		Path:   []Segment{Move{X: 0, Y: 0}},
		Fill:   RGBA(0x10, 0x20, 0x30, 128),
		Stroke: Transparent,
	})

	out := string(d.Encode())
	assert.Contains(t, out, "fill=\"#102030\" fill-opacity=\"0.501961\" ")
}

func TestEncodeGradientSuppressed(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}
	d.Shapes = append(d.Shapes, Shape{
		Path:   []Segment{Move{X: 0, Y: 0}},
		Fill:   LinearGradient,
		Stroke: Transparent,
	})

	out := string(d.Encode())
	assert.Contains(t, out, "<path d=\"M 0 0 \"/>\n")
}

func TestEncodeTextEscaping(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}
	d.Shapes = append(d.Shapes, Shape{
		Text:   "a < b & b > c",
		TextX:  1,
		TextY:  2,
		Fill:   RGB(0, 0, 0),
		Stroke: Transparent,
	})

	out := string(d.Encode())
	assert.Contains(t, out, "<text x=\"1\" y=\"2\" fill=\"#000000\" >a &lt; b &amp; b &gt; c</text>\n")
}

func TestEncodeFloatPrecision(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}
	d.Shapes = append(d.Shapes, Shape{
		Path:   []Segment{Move{X: 26.666666666, Y: 0.000123456789}},
		Fill:   RGB(0, 0, 0),
		Stroke: Transparent,
	})

	out := string(d.Encode())
	assert.Contains(t, out, "M 26.6667 0.000123457 ")
}

func TestLengthMatchesEncoding(t *testing.T) {
	d := parseString(t, `<svg width="100" height="100"><rect x="10" y="20" width="30" height="40" fill="#ff0000"/></svg>`, 100, 100)
	assert.Equal(t, len(d.Encode()), d.Length())
}

func TestWriteTo(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10}

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, d.Encode(), buf.Bytes())
}
