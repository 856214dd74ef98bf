package svgflat

import (
	"github.com/fogleman/gg"
)

// textPoints is the size text runs draw at. Lengths in the parser
// resolve font-relative units against the same fixed size.
const textPoints = 20

// NewContext creates a render context sized to the diagram.
func NewContext(d *Diagram) *gg.Context {
	if d.Width != 0 && d.Height != 0 {
		return gg.NewContext(d.Width, d.Height)
	}
	return gg.NewContext(1024, 1024)
}

// NewScaledContext creates a render context with the given scaling
// factor applied.
func NewScaledContext(d *Diagram, scale float64) *gg.Context {
	width, height := 1024, 1024
	if d.Width != 0 && d.Height != 0 {
		width, height = d.Width, d.Height
	}

	ctx := gg.NewContext(int(float64(width)*scale), int(float64(height)*scale))
	ctx.Scale(scale, scale)
	return ctx
}

// Render draws a flattened diagram onto the given context. The tapes
// are already in device space, so rendering is a single pass with no
// transform or style resolution left to do.
func Render(ctx *gg.Context, d *Diagram) error {
	for i := range d.Shapes {
		shape := &d.Shapes[i]
		if shape.IsText() {
			if err := renderText(ctx, shape); err != nil {
				return err
			}
			continue
		}

		ctx.ClearPath()
		for _, segment := range shape.Path {
			switch s := segment.(type) {
			case Move:
				ctx.MoveTo(s.X, s.Y)
			case Line:
				ctx.LineTo(s.X, s.Y)
			case Bezier:
				ctx.CubicTo(s.X1, s.Y1, s.X2, s.Y2, s.X, s.Y)
			case Close:
				ctx.ClosePath()
			}
		}

		if !shape.Fill.IsTransparent() {
			ctx.SetColor(shape.Fill.NRGBA())
			ctx.FillPreserve()
		}
		if !shape.Stroke.IsTransparent() && shape.StrokeWidth > 0 {
			ctx.SetColor(shape.Stroke.NRGBA())
			ctx.SetLineWidth(shape.StrokeWidth)
			ctx.StrokePreserve()
		}
		ctx.ClearPath()
	}

	return nil
}

func renderText(ctx *gg.Context, shape *Shape) error {
	if shape.Fill.IsTransparent() {
		return nil
	}

	face, err := textFace(textPoints)
	if err != nil {
		return err
	}
	ctx.SetFontFace(face)
	ctx.SetColor(shape.Fill.NRGBA())
	ctx.DrawStringAnchored(shape.Text, shape.TextX, shape.TextY, 0, 0)
	return nil
}
