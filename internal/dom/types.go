package dom

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/image/colornames"
)

// Attribute value types. All of them implement encoding.TextUnmarshaler
// over a CSS token stream. Unlike ordinary unmarshalers they never fail
// the enclosing document: a value that does not match its grammar
// leaves the receiver at its zero value so the walker can fall back to
// the inherited or default state.

// Length is a CSS length: a number plus an optional unit suffix.
type Length struct {
	Value float64
	Units string
}

// The fixed font size used to resolve em and ex units. There is no
// style cascade; every font-relative length resolves against this.
const fontSize = 20

// Pixels resolves the length to user-space units.
func (l Length) Pixels() float64 {
	switch l.Units {
	case "", "px":
		return l.Value
	case "em":
		return l.Value * fontSize
	case "ex":
		return l.Value * fontSize / 2
	case "pt":
		return l.Value * 1.25
	case "pc":
		return l.Value * 15
	case "mm":
		return l.Value * 3.543307
	case "cm":
		return l.Value * 35.43307
	case "in":
		return l.Value * 90
	}
	return 0
}

// splitDimension cuts a dimension token into its numeric prefix and
// unit suffix. The prefix is the longest leading run over the alphabet
// {0-9, +, -, .}; whatever follows is the unit.
func splitDimension(v string) (string, string) {
	i := 0
	for i < len(v) {
		c := v[i]
		if c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' {
			i++
			continue
		}
		break
	}
	return v[:i], v[i:]
}

func (v *valueScanner) length() (Length, bool) {
	switch v.typ {
	case css.NumberToken:
		n, ok := v.number()
		if !ok {
			return Length{}, false
		}
		return Length{Value: n}, true
	case css.DimensionToken:
		num, units := splitDimension(v.val)
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Length{}, false
		}
		return Length{Value: n, Units: units}, true
	}
	return Length{}, false
}

func (l *Length) UnmarshalText(text []byte) error {
	if v, ok := scanValue(string(text)).length(); ok {
		*l = v
	}
	return nil
}

// LengthPercentage is a CSS length or percentage.
type LengthPercentage struct {
	Length     Length
	Percentage float64
}

// Pixels resolves the value against the given viewport dimension.
func (lp LengthPercentage) Pixels(viewport float64) float64 {
	if lp.Percentage != 0 {
		return lp.Percentage / 100 * viewport
	}
	return lp.Length.Pixels()
}

func (v *valueScanner) lengthPercentage() (LengthPercentage, bool) {
	if p, ok := v.percentage(); ok {
		return LengthPercentage{Percentage: p}, true
	}
	if l, ok := v.length(); ok {
		return LengthPercentage{Length: l}, true
	}
	return LengthPercentage{}, false
}

func (lp *LengthPercentage) UnmarshalText(text []byte) error {
	if v, ok := scanValue(string(text)).lengthPercentage(); ok {
		*lp = v
	}
	return nil
}

// ParseLengthPercentage parses a standalone value string, as found in
// an inline style declaration.
func ParseLengthPercentage(s string) (LengthPercentage, bool) {
	return scanValue(s).lengthPercentage()
}

// NumberPercentage is a number or percentage, used by the opacity
// attributes. The parsed result is normalized to the [0, 1] range of
// the number form.
type NumberPercentage struct {
	Valid bool
	Value float64
}

func (np *NumberPercentage) UnmarshalText(text []byte) error {
	v := scanValue(string(text))
	if n, ok := v.number(); ok {
		np.Valid, np.Value = true, n
		return nil
	}
	if p, ok := v.percentage(); ok {
		np.Valid, np.Value = true, p/100
	}
	return nil
}

// Paint is a fill or stroke value: none, a color, or a url(#id)
// reference. A Paint with a nil Color and an empty URL did not match
// the paint grammar and is ignored by the walker.
type Paint struct {
	URL   string
	Color color.Color
}

func (p *Paint) UnmarshalText(text []byte) error {
	*p = ParsePaint(string(text))
	return nil
}

// ParsePaint parses a paint value string.
func ParsePaint(s string) Paint {
	v := scanValue(s)
	switch v.typ {
	case css.URLToken:
		return Paint{URL: strings.TrimSuffix(strings.TrimPrefix(v.val, "url("), ")")}
	case css.FunctionToken:
		if c, ok := rgbColor(v); ok {
			return Paint{Color: c}
		}
	case css.HashToken:
		if c, ok := hexColor(v.val[1:]); ok {
			return Paint{Color: c}
		}
	case css.IdentToken:
		if v.val == "none" {
			return Paint{Color: color.Transparent}
		}
		// Named colors are an external lookup; unknown names leave the
		// paint unchanged.
		if c, ok := colornames.Map[v.val]; ok {
			return Paint{Color: color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}}
		}
	}
	return Paint{}
}

// hexColor decodes #RGB and #RRGGBB forms. The short form duplicates
// each nibble into both halves of its channel.
func hexColor(digits string) (color.Color, bool) {
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, false
	}

	switch len(digits) {
	case 3:
		r, g, b := uint8(n>>8&0xf), uint8(n>>4&0xf), uint8(n&0xf)
		return color.NRGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 0xff}, true
	case 6:
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, true
	}
	return nil, false
}

// rgbColor consumes an rgb(R,G,B) function with integer or percentage
// channels.
func rgbColor(v *valueScanner) (color.Color, bool) {
	if v.val != "rgb(" {
		return nil, false
	}

	var channels []uint8
	for {
		v.next()
		if v.typ == css.RightParenthesisToken {
			break
		}

		if n, ok := v.number(); ok {
			if n < 0 || n > 255 {
				return nil, false
			}
			channels = append(channels, uint8(n))
			continue
		}
		if p, ok := v.percentage(); ok {
			if p < 0 || p > 100 {
				return nil, false
			}
			channels = append(channels, uint8(p*255/100))
			continue
		}
		return nil, false
	}

	if len(channels) != 3 {
		return nil, false
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 0xff}, true
}
