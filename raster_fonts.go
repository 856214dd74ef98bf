package svgflat

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// The diagram model carries no font information, so every text run
// draws with one face: the first usable system sans, or the embedded
// Go regular face when the host has none.
var systemFontNames = []string{
	"DejaVuSans.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
	"LiberationSans-Regular.ttf",
}

var textFont struct {
	once sync.Once
	font *sfnt.Font
	err  error
}

func textFace(points float64) (font.Face, error) {
	textFont.once.Do(func() {
		textFont.font, textFont.err = loadTextFont()
	})
	if textFont.err != nil {
		return nil, textFont.err
	}

	return opentype.NewFace(textFont.font, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func loadTextFont() (*sfnt.Font, error) {
	for _, name := range systemFontNames {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if f, err := opentype.Parse(b); err == nil {
			return f, nil
		}
	}

	return opentype.Parse(goregular.TTF)
}
