package svgflat

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const encodeHeader = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN"
"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
`

// textEscaper escapes element character data. Attribute values in the
// output are numeric or enumerated, so only text content needs it.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Encode serializes the diagram as a reduced SVG document.
func (d *Diagram) Encode() []byte {
	var buf bytes.Buffer

	buf.WriteString(encodeHeader)
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%dpx\" height=\"%dpx\" viewbox=\"0 0 %d %d\">\n",
		d.Width, d.Height, d.Width, d.Height)

	for i := range d.Shapes {
		shape := &d.Shapes[i]
		if shape.IsText() {
			encodeText(&buf, shape)
		} else {
			encodePath(&buf, shape)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Length returns the size of the encoded form.
func (d *Diagram) Length() int {
	return len(d.Encode())
}

// WriteTo writes the encoded form to w.
func (d *Diagram) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Encode())
	return int64(n), err
}

func encodePath(buf *bytes.Buffer, shape *Shape) {
	buf.WriteString("<path ")
	encodeStyle(buf, shape)
	buf.WriteString("d=\"")
	for _, segment := range shape.Path {
		switch s := segment.(type) {
		case Move:
			fmt.Fprintf(buf, "M %.6g %.6g ", s.X, s.Y)
		case Line:
			fmt.Fprintf(buf, "L %.6g %.6g ", s.X, s.Y)
		case Bezier:
			fmt.Fprintf(buf, "C %.6g %.6g %.6g %.6g %.6g %.6g ", s.X1, s.Y1, s.X2, s.Y2, s.X, s.Y)
		case Close:
			buf.WriteString("Z ")
		}
	}
	buf.WriteString("\"/>\n")
}

func encodeText(buf *bytes.Buffer, shape *Shape) {
	fmt.Fprintf(buf, "<text x=\"%.6g\" y=\"%.6g\" ", shape.TextX, shape.TextY)
	encodeStyle(buf, shape)
	buf.WriteByte('>')
	textEscaper.WriteString(buf, shape.Text)
	buf.WriteString("</text>\n")
}

// encodeStyle reconstructs the paint attributes. Transparent and
// gradient-reference paints are omitted entirely; opacity attributes
// appear only when the alpha byte is not 0xff.
func encodeStyle(buf *bytes.Buffer, shape *Shape) {
	if !shape.Fill.IsTransparent() {
		fmt.Fprintf(buf, "fill=\"#%02x%02x%02x\" ", shape.Fill.Red(), shape.Fill.Green(), shape.Fill.Blue())
		if a := shape.Fill.Alpha(); a != 0xff {
			fmt.Fprintf(buf, "fill-opacity=\"%.6g\" ", float64(a)/255)
		}
	}
	if !shape.Stroke.IsTransparent() {
		fmt.Fprintf(buf, "stroke=\"#%02x%02x%02x\" stroke-width=\"%.6g\" ", shape.Stroke.Red(), shape.Stroke.Green(), shape.Stroke.Blue(), shape.StrokeWidth)
		if a := shape.Stroke.Alpha(); a != 0xff {
			fmt.Fprintf(buf, "stroke-opacity=\"%.6g\" ", float64(a)/255)
		}
	}
}
