// Package dom holds the typed SVG element tree and the attribute
// micro-grammars. The tree is decoded with encoding/xml; scalar
// attribute values are tokenized with the tdewolff CSS lexer, path data
// and point lists with a byte-level scanner. All of them degrade to
// zero values rather than failing the document, so one malformed
// attribute never discards the rest of the input.
package dom

import (
	"encoding/xml"
)

// Element is an SVG element.
type Element interface {
	Attrs() *ElementAttributes

	isElement()
}

// Child wraps one child element. Unrecognized children decode to
// Unknown nodes that keep ids visible but are never flattened.
type Child struct {
	X Element
}

func (c *Child) UnmarshalXML(d *xml.Decoder, s xml.StartElement) error {
	switch s.Name.Local {
	case "svg":
		c.X = &SVG{}
	case "g":
		c.X = &Group{}
	case "a":
		c.X = &Anchor{}
	case "path":
		c.X = &Path{}
	case "rect":
		c.X = &Rect{}
	case "circle":
		c.X = &Circle{}
	case "line":
		c.X = &Line{}
	case "polyline":
		c.X = &Polyline{}
	case "polygon":
		c.X = &Polygon{}
	case "text":
		c.X = &Text{}
	case "tspan":
		c.X = &TSpan{}
	default:
		// Unrecognized elements are not flattened, but their ids (and
		// their descendants' ids) must stay visible to url(#id)
		// resolution.
		c.X = &Unknown{}
	}

	return d.DecodeElement(c.X, &s)
}

// ElementAttributes contains the attributes shared by every element
// the walker handles.
type ElementAttributes struct {
	ID string `xml:"id,attr"`

	Fill          *Paint            `xml:"fill,attr"`
	FillOpacity   *NumberPercentage `xml:"fill-opacity,attr"`
	Stroke        *Paint            `xml:"stroke,attr"`
	StrokeOpacity *NumberPercentage `xml:"stroke-opacity,attr"`
	StrokeWidth   *LengthPercentage `xml:"stroke-width,attr"`

	// Inline style declarations; resolved by substring search for the
	// three supported properties.
	Style string `xml:"style,attr"`

	FontSize *Length `xml:"font-size,attr"`

	Transform *TransformList `xml:"transform,attr"`
}

func (ea *ElementAttributes) Attrs() *ElementAttributes {
	return ea
}

// SVG is an `svg` element, either the document root or nested.
type SVG struct {
	ElementAttributes

	XMLName xml.Name `xml:"svg"`

	X      LengthPercentage  `xml:"x,attr"`
	Y      LengthPercentage  `xml:"y,attr"`
	Width  *LengthPercentage `xml:"width,attr"`
	Height *LengthPercentage `xml:"height,attr"`

	ViewBox string `xml:"viewBox,attr"`

	Children []Child `xml:",any"`
}

func (*SVG) isElement() {}

// Group is a `g` element.
type Group struct {
	ElementAttributes

	XMLName xml.Name `xml:"g"`

	ViewBox string `xml:"viewBox,attr"`

	Children []Child `xml:",any"`
}

func (*Group) isElement() {}

// Anchor is an `a` element; it behaves as a plain container.
type Anchor struct {
	ElementAttributes

	XMLName xml.Name `xml:"a"`

	ViewBox string `xml:"viewBox,attr"`

	Children []Child `xml:",any"`
}

func (*Anchor) isElement() {}

// Path is a `path` element.
type Path struct {
	ElementAttributes

	XMLName xml.Name `xml:"path"`

	D *PathData `xml:"d,attr"`
}

func (*Path) isElement() {}

// Rect is a `rect` element.
type Rect struct {
	ElementAttributes

	XMLName xml.Name `xml:"rect"`

	X      LengthPercentage  `xml:"x,attr"`
	Y      LengthPercentage  `xml:"y,attr"`
	Width  *LengthPercentage `xml:"width,attr"`
	Height *LengthPercentage `xml:"height,attr"`
}

func (*Rect) isElement() {}

// Circle is a `circle` element.
type Circle struct {
	ElementAttributes

	XMLName xml.Name `xml:"circle"`

	Cx LengthPercentage `xml:"cx,attr"`
	Cy LengthPercentage `xml:"cy,attr"`
	R  LengthPercentage `xml:"r,attr"`
}

func (*Circle) isElement() {}

// Line is a `line` element.
type Line struct {
	ElementAttributes

	XMLName xml.Name `xml:"line"`

	X1 LengthPercentage `xml:"x1,attr"`
	Y1 LengthPercentage `xml:"y1,attr"`
	X2 LengthPercentage `xml:"x2,attr"`
	Y2 LengthPercentage `xml:"y2,attr"`
}

func (*Line) isElement() {}

// PolyPoints is a points= attribute.
type PolyPoints []Point

func (p *PolyPoints) UnmarshalText(text []byte) error {
	*p = ParsePoints(string(text))
	return nil
}

// Polyline is a `polyline` element.
type Polyline struct {
	ElementAttributes

	XMLName xml.Name `xml:"polyline"`

	Points PolyPoints `xml:"points,attr"`
}

func (*Polyline) isElement() {}

// Polygon is a `polygon` element.
type Polygon struct {
	ElementAttributes

	XMLName xml.Name `xml:"polygon"`

	Points PolyPoints `xml:"points,attr"`
}

func (*Polygon) isElement() {}

// Text is a `text` element: character data plus tspan children.
type Text struct {
	ElementAttributes

	XMLName xml.Name `xml:"text"`

	X LengthPercentage `xml:"x,attr"`
	Y LengthPercentage `xml:"y,attr"`

	Value    string  `xml:",chardata"`
	Children []Child `xml:",any"`
}

func (*Text) isElement() {}

// TSpan is a `tspan` element. It carries the same content model as
// Text and recurses the same way.
type TSpan struct {
	ElementAttributes

	XMLName xml.Name `xml:"tspan"`

	X LengthPercentage `xml:"x,attr"`
	Y LengthPercentage `xml:"y,attr"`

	Value    string  `xml:",chardata"`
	Children []Child `xml:",any"`
}

func (*TSpan) isElement() {}

// Unknown is an element the walker has no handler for.
type Unknown struct {
	ElementAttributes

	Children []Child `xml:",any"`
}

func (*Unknown) isElement() {}

// Walk visits every element of the tree in document order.
func Walk(root *SVG, visitor func(e Element)) {
	visitor(root)
	walkChildren(root.Children, visitor)
}

func walkChildren(children []Child, visitor func(e Element)) {
	for _, c := range children {
		if c.X == nil {
			continue
		}
		visitor(c.X)

		switch e := c.X.(type) {
		case *SVG:
			walkChildren(e.Children, visitor)
		case *Group:
			walkChildren(e.Children, visitor)
		case *Anchor:
			walkChildren(e.Children, visitor)
		case *Text:
			walkChildren(e.Children, visitor)
		case *TSpan:
			walkChildren(e.Children, visitor)
		case *Unknown:
			walkChildren(e.Children, visitor)
		}
	}
}
