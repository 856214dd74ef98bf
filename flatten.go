package svgflat

import (
	"image/color"
	"strings"

	"github.com/svgflat/svgflat/internal/dom"
)

// kappa is the control-point magnitude that makes a cubic Bézier
// approximate a quarter circle.
const kappa = 0.5522847498

// state is the cascading parse state. It is passed by value down the
// recursive walk: each container shadows fields for its own subtree
// and siblings see the parent's copy untouched.
type state struct {
	viewportWidth  float64
	viewportHeight float64

	ctm dom.Matrix2D

	fill        Color
	stroke      Color
	strokeWidth float64
}

type flattener struct {
	diagram *Diagram
	ids     map[string]dom.Element
}

func (f *flattener) element(e dom.Element, st state) {
	switch e := e.(type) {
	case *dom.SVG:
		f.container(&e.ElementAttributes, e.ViewBox, e.Children, st)
	case *dom.Group:
		f.container(&e.ElementAttributes, e.ViewBox, e.Children, st)
	case *dom.Anchor:
		f.container(&e.ElementAttributes, e.ViewBox, e.Children, st)
	case *dom.Path:
		f.path(e, st)
	case *dom.Rect:
		f.rect(e, st)
	case *dom.Circle:
		f.circle(e, st)
	case *dom.Line:
		f.line(e, st)
	case *dom.Polyline:
		f.poly(e.ElementAttributes, e.Points, false, st)
	case *dom.Polygon:
		f.poly(e.ElementAttributes, e.Points, true, st)
	case *dom.Text:
		f.text(&e.ElementAttributes, e.X, e.Y, e.Value, e.Children, st)
	case *dom.TSpan:
		f.text(&e.ElementAttributes, e.X, e.Y, e.Value, e.Children, st)
	}
}

// container handles svg, g, and a: paint and transform attributes
// cascade into a local copy of the state, then the children walk.
func (f *flattener) container(attrs *dom.ElementAttributes, viewBox string, children []dom.Child, st state) {
	st = f.paintAttributes(attrs, st)

	if minX, minY, vw, vh, ok := parseViewBox(viewBox); ok && vw != 0 && vh != 0 {
		sx := st.viewportWidth / vw
		sy := st.viewportHeight / vh
		st.ctm = st.ctm.Mult(dom.Matrix2D{A: sx, D: sy, E: -minX * sx, F: -minY * sy})
	}

	st = transformAttributes(attrs, st)

	for _, c := range children {
		if c.X != nil {
			f.element(c.X, st)
		}
	}
}

func parseViewBox(s string) (minX, minY, w, h float64, ok bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}

	var vals [4]float64
	for i, field := range fields {
		lp, ok := dom.ParseLengthPercentage(field)
		if !ok || lp.Percentage != 0 || lp.Length.Units != "" {
			return 0, 0, 0, 0, false
		}
		vals[i] = lp.Length.Value
	}
	return vals[0], vals[1], vals[2], vals[3], true
}

func transformAttributes(attrs *dom.ElementAttributes, st state) state {
	if attrs.Transform != nil {
		st.ctm = st.ctm.Mult(attrs.Transform.Matrix)
	}
	return st
}

// paintAttributes folds fill, stroke, stroke-width, the opacity
// attributes, and the three recognized inline style properties into
// the state copy.
func (f *flattener) paintAttributes(attrs *dom.ElementAttributes, st state) state {
	if attrs.Fill != nil {
		st.fill = f.resolvePaint(*attrs.Fill, st.fill)
	}
	if attrs.Stroke != nil {
		st.stroke = f.resolvePaint(*attrs.Stroke, st.stroke)
	}
	if attrs.StrokeWidth != nil {
		st.strokeWidth = attrs.StrokeWidth.Pixels(st.viewportWidth)
	}

	if attrs.Style != "" {
		if v, ok := styleValue(attrs.Style, "fill:"); ok {
			st.fill = f.resolvePaint(dom.ParsePaint(v), st.fill)
		}
		if v, ok := styleValue(attrs.Style, "stroke:"); ok {
			st.stroke = f.resolvePaint(dom.ParsePaint(v), st.stroke)
		}
		if v, ok := styleValue(attrs.Style, "stroke-width:"); ok {
			if lp, ok := dom.ParseLengthPercentage(v); ok {
				st.strokeWidth = lp.Pixels(st.viewportWidth)
			}
		}
	}

	if attrs.FillOpacity != nil && attrs.FillOpacity.Valid && !st.fill.IsTransparent() {
		st.fill = st.fill.WithAlpha(opacityByte(attrs.FillOpacity.Value))
	}
	if attrs.StrokeOpacity != nil && attrs.StrokeOpacity.Valid && !st.stroke.IsTransparent() {
		st.stroke = st.stroke.WithAlpha(opacityByte(attrs.StrokeOpacity.Value))
	}

	return st
}

func opacityByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

// styleValue extracts the value of a property from an inline style
// string by substring search. The value runs to the next ';' or space.
func styleValue(style, property string) (string, bool) {
	i := strings.Index(style, property)
	if i < 0 {
		return "", false
	}
	v := style[i+len(property):]
	v = strings.TrimLeft(v, " ")
	if j := strings.IndexAny(v, "; "); j >= 0 {
		v = v[:j]
	}
	return v, true
}

func (f *flattener) resolvePaint(p dom.Paint, current Color) Color {
	if p.URL != "" {
		if !strings.HasPrefix(p.URL, "#") {
			return current
		}
		id := p.URL[1:]
		if _, ok := f.ids[id]; !ok {
			f.diagram.setError("id \"" + id + "\" not found")
			return current
		}
		return LinearGradient
	}

	switch c := p.Color.(type) {
	case nil:
		return current
	case color.NRGBA:
		return RGBA(c.R, c.G, c.B, c.A)
	default:
		if p.Color == color.Transparent {
			return Transparent
		}
		r, g, b, a := p.Color.RGBA()
		return RGBA(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
	}
}

// addShape appends a shape carrying the current paint state. The
// stroke width is scaled by the isotropic approximation (a+d)/2 of the
// live matrix.
func (f *flattener) addShape(st state) *Shape {
	f.diagram.Shapes = append(f.diagram.Shapes, Shape{
		Fill:        st.fill,
		Stroke:      st.stroke,
		StrokeWidth: st.strokeWidth * (st.ctm.A + st.ctm.D) / 2,
	})
	return &f.diagram.Shapes[len(f.diagram.Shapes)-1]
}

func (f *flattener) path(e *dom.Path, st state) {
	st = f.paintAttributes(&e.ElementAttributes, st)
	st = transformAttributes(&e.ElementAttributes, st)

	if e.D == nil {
		return
	}

	shape := f.addShape(st)
	shape.Path = flattenCommands(e.D.Commands, st.ctm)
}

// flattenCommands interprets a parsed d attribute into a device-space
// tape. Relative coordinates resolve against the current point;
// smooth commands reflect the previous control point; quadratic curves
// promote to cubics.
func flattenCommands(commands []dom.PathCommand, ctm dom.Matrix2D) []Segment {
	segments := make([]Segment, 0, len(commands))

	var curX, curY float64
	var lastCubicX, lastCubicY float64
	var lastQuadX, lastQuadY float64

	appendMove := func(x, y float64) {
		tx, ty := ctm.Transform(x, y)
		segments = append(segments, Move{X: tx, Y: ty})
	}
	appendLine := func(x, y float64) {
		tx, ty := ctm.Transform(x, y)
		segments = append(segments, Line{X: tx, Y: ty})
	}
	appendBezier := func(x1, y1, x2, y2, x, y float64) {
		tx1, ty1 := ctm.Transform(x1, y1)
		tx2, ty2 := ctm.Transform(x2, y2)
		tx, ty := ctm.Transform(x, y)
		segments = append(segments, Bezier{X1: tx1, Y1: ty1, X2: tx2, Y2: ty2, X: tx, Y: ty})
	}

	for _, command := range commands {
		switch c := command.(type) {
		case *dom.MoveTo:
			for i, p := range c.Points {
				x, y := p.X, p.Y
				if !c.Abs {
					x, y = curX+x, curY+y
				}
				if i == 0 {
					appendMove(x, y)
				} else {
					appendLine(x, y)
				}
				curX, curY = x, y
			}
			lastCubicX, lastCubicY = curX, curY
			lastQuadX, lastQuadY = curX, curY

		case *dom.LineTo:
			for _, p := range c.Points {
				x, y := p.X, p.Y
				if !c.Abs {
					x, y = curX+x, curY+y
				}
				appendLine(x, y)
				curX, curY = x, y
			}
			lastCubicX, lastCubicY = curX, curY
			lastQuadX, lastQuadY = curX, curY

		case *dom.HLineTo:
			for _, x := range c.Coords {
				if !c.Abs {
					x += curX
				}
				appendLine(x, curY)
				curX = x
			}
			lastCubicX, lastCubicY = curX, curY
			lastQuadX, lastQuadY = curX, curY

		case *dom.VLineTo:
			for _, y := range c.Coords {
				if !c.Abs {
					y += curY
				}
				appendLine(curX, y)
				curY = y
			}
			lastCubicX, lastCubicY = curX, curY
			lastQuadX, lastQuadY = curX, curY

		case *dom.ClosePath:
			segments = append(segments, Close{})

		case *dom.CubicBezier:
			for _, curve := range c.Curves {
				var x1, y1 float64
				if c.Smooth {
					x1 = 2*curX - lastCubicX
					y1 = 2*curY - lastCubicY
				} else if c.Abs {
					x1, y1 = curve.X1, curve.Y1
				} else {
					x1, y1 = curX+curve.X1, curY+curve.Y1
				}

				x2, y2, x, y := curve.X2, curve.Y2, curve.To.X, curve.To.Y
				if !c.Abs {
					x2, y2 = curX+x2, curY+y2
					x, y = curX+x, curY+y
				}

				appendBezier(x1, y1, x2, y2, x, y)
				lastCubicX, lastCubicY = x2, y2
				curX, curY = x, y
				lastQuadX, lastQuadY = curX, curY
			}

		case *dom.QuadraticBezier:
			for _, curve := range c.Curves {
				var qx, qy float64
				if c.Smooth {
					qx = 2*curX - lastQuadX
					qy = 2*curY - lastQuadY
				} else if c.Abs {
					qx, qy = curve.X1, curve.Y1
				} else {
					qx, qy = curX+curve.X1, curY+curve.Y1
				}

				x, y := curve.To.X, curve.To.Y
				if !c.Abs {
					x, y = curX+x, curY+y
				}

				// Promote the quadratic to a cubic.
				appendBezier(
					(curX+2*qx)/3, (curY+2*qy)/3,
					(2*qx+x)/3, (2*qy+y)/3,
					x, y)
				lastQuadX, lastQuadY = qx, qy
				curX, curY = x, y
				lastCubicX, lastCubicY = curX, curY
			}

		case *dom.EllipticalArc:
			// Arcs are not flattened; advance past them so the rest of
			// the path stays anchored.
			for _, arg := range c.Args {
				x, y := arg.To.X, arg.To.Y
				if !c.Abs {
					x, y = curX+x, curY+y
				}
				curX, curY = x, y
			}
			lastCubicX, lastCubicY = curX, curY
			lastQuadX, lastQuadY = curX, curY
		}
	}

	return segments
}

func (f *flattener) rect(e *dom.Rect, st state) {
	st = f.paintAttributes(&e.ElementAttributes, st)
	st = transformAttributes(&e.ElementAttributes, st)

	x := e.X.Pixels(st.viewportWidth)
	y := e.Y.Pixels(st.viewportHeight)
	w := st.viewportWidth
	if e.Width != nil {
		w = e.Width.Pixels(st.viewportWidth)
	}
	h := st.viewportHeight
	if e.Height != nil {
		h = e.Height.Pixels(st.viewportHeight)
	}

	shape := f.addShape(st)
	shape.Path = flattenCommands([]dom.PathCommand{
		&dom.MoveTo{Abs: true, Points: []dom.Point{{X: x, Y: y}}},
		&dom.LineTo{Abs: true, Points: []dom.Point{
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		}},
		&dom.ClosePath{},
	}, st.ctm)
}

func (f *flattener) circle(e *dom.Circle, st state) {
	st = f.paintAttributes(&e.ElementAttributes, st)
	st = transformAttributes(&e.ElementAttributes, st)

	cx := e.Cx.Pixels(st.viewportWidth)
	cy := e.Cy.Pixels(st.viewportHeight)
	r := e.R.Pixels(st.viewportWidth)
	k := r * kappa

	shape := f.addShape(st)
	shape.Path = flattenCommands([]dom.PathCommand{
		&dom.MoveTo{Abs: true, Points: []dom.Point{{X: cx - r, Y: cy}}},
		&dom.CubicBezier{Abs: true, Curves: []dom.CubicCurve{
			{X1: cx - r, Y1: cy + k, X2: cx - k, Y2: cy + r, To: dom.Point{X: cx, Y: cy + r}},
			{X1: cx + k, Y1: cy + r, X2: cx + r, Y2: cy + k, To: dom.Point{X: cx + r, Y: cy}},
			{X1: cx + r, Y1: cy - k, X2: cx + k, Y2: cy - r, To: dom.Point{X: cx, Y: cy - r}},
			{X1: cx - k, Y1: cy - r, X2: cx - r, Y2: cy - k, To: dom.Point{X: cx - r, Y: cy}},
		}},
		&dom.ClosePath{},
	}, st.ctm)
}

func (f *flattener) line(e *dom.Line, st state) {
	st = f.paintAttributes(&e.ElementAttributes, st)
	st = transformAttributes(&e.ElementAttributes, st)

	x1 := e.X1.Pixels(st.viewportWidth)
	y1 := e.Y1.Pixels(st.viewportHeight)
	x2 := e.X2.Pixels(st.viewportWidth)
	y2 := e.Y2.Pixels(st.viewportHeight)

	shape := f.addShape(st)
	shape.Path = flattenCommands([]dom.PathCommand{
		&dom.MoveTo{Abs: true, Points: []dom.Point{{X: x1, Y: y1}}},
		&dom.LineTo{Abs: true, Points: []dom.Point{{X: x2, Y: y2}}},
		&dom.ClosePath{},
	}, st.ctm)
}

func (f *flattener) poly(attrs dom.ElementAttributes, points dom.PolyPoints, polygon bool, st state) {
	st = f.paintAttributes(&attrs, st)
	st = transformAttributes(&attrs, st)

	if len(points) == 0 {
		return
	}

	commands := []dom.PathCommand{
		&dom.MoveTo{Abs: true, Points: []dom.Point{points[0]}},
	}
	if len(points) > 1 {
		rest := make([]dom.Point, len(points)-1)
		copy(rest, points[1:])
		commands = append(commands, &dom.LineTo{Abs: true, Points: rest})
	}
	if polygon {
		commands = append(commands, &dom.ClosePath{})
	}

	shape := f.addShape(st)
	shape.Path = flattenCommands(commands, st.ctm)
}

// text handles text and tspan. Paint is not read here; it inherits
// from the nearest container. Character data anchors at the element's
// transformed position and tspan children recurse with the local
// state.
func (f *flattener) text(attrs *dom.ElementAttributes, x, y dom.LengthPercentage, value string, children []dom.Child, st state) {
	st = transformAttributes(attrs, st)

	px, py := st.ctm.Transform(x.Pixels(st.viewportWidth), y.Pixels(st.viewportHeight))

	if strings.TrimSpace(value) != "" {
		shape := f.addShape(st)
		shape.Text = value
		shape.TextX = px
		shape.TextY = py
	}

	for _, c := range children {
		if ts, ok := c.X.(*dom.TSpan); ok {
			f.text(&ts.ElementAttributes, ts.X, ts.Y, ts.Value, ts.Children, st)
		}
	}
}
