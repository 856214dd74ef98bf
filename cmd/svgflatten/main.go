// Command svgflatten reads an SVG document on stdin and writes the
// flattened, reduced form on stdout. With -png it rasterizes instead.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/svgflat/svgflat"
)

func main() {
	width := flag.Int("width", 512, "viewport width in user units")
	height := flag.Int("height", 512, "viewport height in user units")
	png := flag.Bool("png", false, "rasterize to PNG instead of emitting SVG")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("svgflatten: ")

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	diagram, err := svgflat.Parse(input, *width, *height)
	if err != nil {
		log.Fatal(err)
	}
	if diagram.ErrorMessage != "" {
		log.Printf("svg error: line %d: %s", diagram.ErrorLine, diagram.ErrorMessage)
	}

	if *png {
		ctx := svgflat.NewContext(diagram)
		if err := svgflat.Render(ctx, diagram); err != nil {
			log.Fatal(err)
		}
		if err := ctx.EncodePNG(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	if _, err := diagram.WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
