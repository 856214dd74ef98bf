package svgflat

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// DiagramImage is a rasterized diagram. It keeps the diagram itself
// reachable so callers that decode through the image package can still
// get at the flattened geometry.
type DiagramImage struct {
	diagram *Diagram
	ctx     *gg.Context
}

func (i *DiagramImage) Diagram() *Diagram {
	return i.diagram
}

func (i *DiagramImage) Context() *gg.Context {
	return i.ctx
}

func (i *DiagramImage) ColorModel() color.Model {
	return i.ctx.Image().ColorModel()
}

func (i *DiagramImage) Bounds() image.Rectangle {
	return i.ctx.Image().Bounds()
}

func (i *DiagramImage) At(x, y int) color.Color {
	return i.ctx.Image().At(x, y)
}

// Scale re-renders the diagram at the given scaling factor.
func (i *DiagramImage) Scale(factor float64) (*DiagramImage, error) {
	ctx := NewScaledContext(i.diagram, factor)
	if err := Render(ctx, i.diagram); err != nil {
		return nil, err
	}
	return &DiagramImage{
		diagram: i.diagram,
		ctx:     ctx,
	}, nil
}

// defaultViewport is the viewport used when decoding through the image
// package, where the caller has no way to pass one. A root element
// with its own width and height overrides it.
const defaultViewport = 1024

// Decode parses and rasterizes an SVG document.
func Decode(r io.Reader) (image.Image, error) {
	diagram, err := ParseReader(r, defaultViewport, defaultViewport)
	if err != nil {
		return nil, err
	}

	ctx := NewContext(diagram)
	if err := Render(ctx, diagram); err != nil {
		return nil, err
	}

	return &DiagramImage{
		diagram: diagram,
		ctx:     ctx,
	}, nil
}

// DecodeConfig parses an SVG document and returns its dimensions.
func DecodeConfig(r io.Reader) (image.Config, error) {
	img, err := Decode(r)
	if err != nil {
		return image.Config{}, err
	}
	bounds := img.Bounds()
	return image.Config{
		ColorModel: img.ColorModel(),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}, nil
}

func init() {
	image.RegisterFormat("svg", "<svg", Decode, DecodeConfig)
}
