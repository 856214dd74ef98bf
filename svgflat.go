// Package svgflat parses SVG 1.1 documents into a flat, render-ready
// diagram: a list of device-space path tapes and text runs with their
// resolved paint, plus a serializer that emits a reduced SVG document
// from such a diagram.
package svgflat

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/svgflat/svgflat/internal/dom"
)

var (
	// ErrNotSVG is returned when the root element is missing or is not
	// named svg.
	ErrNotSVG = errors.New("svgflat: root element is not svg")

	// ErrXML wraps failures to construct the XML tree.
	ErrXML = errors.New("svgflat: xml error")
)

// Parse flattens an SVG document. The viewport arguments give the
// dimensions, in user units, that percentage lengths on the root
// element resolve against; the root's own width and height attributes
// then fix the diagram size.
func Parse(b []byte, viewportWidth, viewportHeight int) (*Diagram, error) {
	return ParseReader(bytes.NewReader(b), viewportWidth, viewportHeight)
}

// ParseReader is Parse over a stream.
func ParseReader(r io.Reader, viewportWidth, viewportHeight int) (*Diagram, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	start, err := rootElement(decoder)
	if err != nil {
		return nil, err
	}
	if start.Name.Local != "svg" {
		return nil, ErrNotSVG
	}

	var doc dom.SVG
	if err := decoder.DecodeElement(&doc, start); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrXML, err)
	}

	diagram := &Diagram{}
	flatten(diagram, &doc, float64(viewportWidth), float64(viewportHeight))
	return diagram, nil
}

func rootElement(decoder *xml.Decoder) (*xml.StartElement, error) {
	for {
		token, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, ErrNotSVG
			}
			return nil, fmt.Errorf("%w: %v", ErrXML, err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return &start, nil
		}
	}
}

// flatten walks the document into the diagram. The initial viewport is
// the caller's, overridden by the root element's own width and height;
// the initial paint is opaque black fill, no stroke, width 1.
func flatten(diagram *Diagram, doc *dom.SVG, viewportWidth, viewportHeight float64) {
	ids := map[string]dom.Element{}
	dom.Walk(doc, func(e dom.Element) {
		if id := e.Attrs().ID; id != "" {
			ids[id] = e
		}
	})

	width := viewportWidth
	if doc.Width != nil {
		width = doc.Width.Pixels(viewportWidth)
	}
	height := viewportHeight
	if doc.Height != nil {
		height = doc.Height.Pixels(viewportHeight)
	}
	diagram.Width = int(width)
	diagram.Height = int(height)

	f := &flattener{diagram: diagram, ids: ids}
	f.element(doc, state{
		viewportWidth:  width,
		viewportHeight: height,
		ctm:            dom.Identity,
		fill:           RGB(0, 0, 0),
		stroke:         Transparent,
		strokeWidth:    1,
	})
}
