package dom

import "strconv"

// PathData is the parsed form of a path's d attribute.
type PathData struct {
	Commands []PathCommand
}

func (d *PathData) UnmarshalText(text []byte) error {
	d.Commands = ParsePathCommands(string(text))
	return nil
}

// PathCommand is one command of the SVG path mini-language.
type PathCommand interface {
	isPathCommand()
}

// Point is a coordinate pair.
type Point struct {
	X float64
	Y float64
}

// MoveTo begins a new subpath. Pairs after the first are implicit
// linetos.
type MoveTo struct {
	Abs    bool
	Points []Point
}

func (*MoveTo) isPathCommand() {}

// ClosePath closes the current subpath.
type ClosePath struct{}

func (*ClosePath) isPathCommand() {}

// LineTo draws straight segments.
type LineTo struct {
	Abs    bool
	Points []Point
}

func (*LineTo) isPathCommand() {}

// HLineTo draws horizontal segments: only the x coordinate moves.
type HLineTo struct {
	Abs    bool
	Coords []float64
}

func (*HLineTo) isPathCommand() {}

// VLineTo draws vertical segments: only the y coordinate moves.
type VLineTo struct {
	Abs    bool
	Coords []float64
}

func (*VLineTo) isPathCommand() {}

// CubicCurve is one curve of a cubic Bézier command. The smooth form
// omits the first control point; it is derived by reflection when the
// command is interpreted.
type CubicCurve struct {
	X1, Y1 float64
	X2, Y2 float64
	To     Point
}

// CubicBezier is a C/c or S/s command.
type CubicBezier struct {
	Abs    bool
	Smooth bool
	Curves []CubicCurve
}

func (*CubicBezier) isPathCommand() {}

// QuadCurve is one curve of a quadratic Bézier command. The smooth
// form omits the control point.
type QuadCurve struct {
	X1, Y1 float64
	To     Point
}

// QuadraticBezier is a Q/q or T/t command.
type QuadraticBezier struct {
	Abs    bool
	Smooth bool
	Curves []QuadCurve
}

func (*QuadraticBezier) isPathCommand() {}

// ArcArg is one arc of an A/a command.
type ArcArg struct {
	Rx, Ry   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	To       Point
}

// EllipticalArc is an A/a command. Arcs are not flattened; they are
// carried so the interpreter can advance past them.
type EllipticalArc struct {
	Abs  bool
	Args []ArcArg
}

func (*EllipticalArc) isPathCommand() {}

// ParsePathCommands parses a d attribute according to the SVG path
// grammar:
//
//	svg_path   ::= wsp* (command wsp*)*
//	coordinate ::= sign? number
//	comma_wsp  ::= (wsp+ ","? wsp*) | ("," wsp*)
//	wsp        ::= #x9 | #xA | #xC | #xD | #x20
//
// A command whose argument sequence is malformed keeps its complete
// leading arguments; the first byte that matches neither a command
// letter nor the current argument production terminates parsing, and
// everything accumulated up to that point is returned.
func ParsePathCommands(d string) []PathCommand {
	p := pathScanner{src: d}

	var commands []PathCommand
	for {
		// Commas are argument separators; tolerate a stray one before
		// a command letter as well.
		p.skipSep()
		if p.atEnd() {
			return commands
		}

		letter := p.src[p.pos]
		p.pos++

		var command PathCommand
		switch letter {
		case 'Z', 'z':
			command = &ClosePath{}
		case 'M', 'm':
			if points := p.pairSeq(1); len(points) > 0 {
				command = &MoveTo{Abs: letter == 'M', Points: points}
			}
		case 'L', 'l':
			if points := p.pairSeq(1); len(points) > 0 {
				command = &LineTo{Abs: letter == 'L', Points: points}
			}
		case 'H', 'h':
			if coords := p.coordSeq(); len(coords) > 0 {
				command = &HLineTo{Abs: letter == 'H', Coords: coords}
			}
		case 'V', 'v':
			if coords := p.coordSeq(); len(coords) > 0 {
				command = &VLineTo{Abs: letter == 'V', Coords: coords}
			}
		case 'C', 'c':
			if points := p.pairSeq(3); len(points) > 0 {
				curves := make([]CubicCurve, 0, len(points)/3)
				for i := 0; i < len(points); i += 3 {
					curves = append(curves, CubicCurve{
						X1: points[i].X, Y1: points[i].Y,
						X2: points[i+1].X, Y2: points[i+1].Y,
						To: points[i+2],
					})
				}
				command = &CubicBezier{Abs: letter == 'C', Curves: curves}
			}
		case 'S', 's':
			if points := p.pairSeq(2); len(points) > 0 {
				curves := make([]CubicCurve, 0, len(points)/2)
				for i := 0; i < len(points); i += 2 {
					curves = append(curves, CubicCurve{
						X2: points[i].X, Y2: points[i].Y,
						To: points[i+1],
					})
				}
				command = &CubicBezier{Abs: letter == 'S', Smooth: true, Curves: curves}
			}
		case 'Q', 'q':
			if points := p.pairSeq(2); len(points) > 0 {
				curves := make([]QuadCurve, 0, len(points)/2)
				for i := 0; i < len(points); i += 2 {
					curves = append(curves, QuadCurve{
						X1: points[i].X, Y1: points[i].Y,
						To: points[i+1],
					})
				}
				command = &QuadraticBezier{Abs: letter == 'Q', Curves: curves}
			}
		case 'T', 't':
			if points := p.pairSeq(1); len(points) > 0 {
				curves := make([]QuadCurve, 0, len(points))
				for _, pt := range points {
					curves = append(curves, QuadCurve{To: pt})
				}
				command = &QuadraticBezier{Abs: letter == 'T', Smooth: true, Curves: curves}
			}
		case 'A', 'a':
			if args := p.arcSeq(); len(args) > 0 {
				command = &EllipticalArc{Abs: letter == 'A', Args: args}
			}
		}

		if command == nil {
			return commands
		}
		commands = append(commands, command)
	}
}

// ParsePoints parses a points= attribute: coordinate pairs separated
// by commas or whitespace. A malformed tail is dropped and the leading
// pairs are kept.
func ParsePoints(s string) []Point {
	p := pathScanner{src: s}
	return p.pairSeq(1)
}

// pathScanner is a cursor over path data. Every production either
// consumes a full match or restores the position it started at, so a
// failed match leaves the garbage byte in place for the caller to
// report or stop on.
type pathScanner struct {
	src string
	pos int
}

func (p *pathScanner) atEnd() bool {
	return p.pos >= len(p.src)
}

func isPathSpace(b byte) bool {
	switch b {
	case 0x09, 0x0a, 0x0c, 0x0d, 0x20:
		return true
	}
	return false
}

func (p *pathScanner) skipSpace() {
	for !p.atEnd() && isPathSpace(p.src[p.pos]) {
		p.pos++
	}
}

// skipSep consumes comma_wsp: any whitespace with at most one comma.
func (p *pathScanner) skipSep() {
	p.skipSpace()
	if !p.atEnd() && p.src[p.pos] == ',' {
		p.pos++
		p.skipSpace()
	}
}

// coord matches sign? digits? ("." digits)? with at least one digit,
// consuming any leading separator. The scan stops at the second dot,
// so "10.5.5" yields 10.5 and leaves ".5" for the next coordinate.
func (p *pathScanner) coord() (float64, bool) {
	start := p.pos
	p.skipSep()

	i := p.pos
	if i < len(p.src) && (p.src[i] == '+' || p.src[i] == '-') {
		i++
	}
	digits := 0
	for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
		i++
		digits++
	}
	if i < len(p.src) && p.src[i] == '.' {
		i++
		for i < len(p.src) && p.src[i] >= '0' && p.src[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		p.pos = start
		return 0, false
	}

	n, err := strconv.ParseFloat(p.src[p.pos:i], 64)
	if err != nil {
		p.pos = start
		return 0, false
	}
	p.pos = i
	return n, true
}

func (p *pathScanner) pair() (Point, bool) {
	start := p.pos
	x, ok := p.coord()
	if !ok {
		return Point{}, false
	}
	y, ok := p.coord()
	if !ok {
		p.pos = start
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// pairSeq matches one or more groups of `group` coordinate pairs.
// Only complete groups are kept: a group that fails mid-way rewinds to
// its start.
func (p *pathScanner) pairSeq(group int) []Point {
	var points []Point
	for {
		start := p.pos
		for i := 0; i < group; i++ {
			pt, ok := p.pair()
			if !ok {
				p.pos = start
				return points[:len(points)-len(points)%group]
			}
			points = append(points, pt)
		}
	}
}

func (p *pathScanner) coordSeq() []float64 {
	var coords []float64
	for {
		c, ok := p.coord()
		if !ok {
			return coords
		}
		coords = append(coords, c)
	}
}

// flag matches a single "0" or "1".
func (p *pathScanner) flag() (bool, bool) {
	start := p.pos
	p.skipSep()
	if p.atEnd() || p.src[p.pos] != '0' && p.src[p.pos] != '1' {
		p.pos = start
		return false, false
	}
	set := p.src[p.pos] == '1'
	p.pos++
	return set, true
}

func (p *pathScanner) arc() (ArcArg, bool) {
	start := p.pos

	var arg ArcArg
	var ok bool
	if arg.Rx, ok = p.coord(); !ok {
		return ArcArg{}, false
	}
	if arg.Ry, ok = p.coord(); !ok {
		p.pos = start
		return ArcArg{}, false
	}
	if arg.Rotation, ok = p.coord(); !ok {
		p.pos = start
		return ArcArg{}, false
	}
	if arg.LargeArc, ok = p.flag(); !ok {
		p.pos = start
		return ArcArg{}, false
	}
	if arg.Sweep, ok = p.flag(); !ok {
		p.pos = start
		return ArcArg{}, false
	}
	if arg.To, ok = p.pair(); !ok {
		p.pos = start
		return ArcArg{}, false
	}
	return arg, true
}

func (p *pathScanner) arcSeq() []ArcArg {
	var args []ArcArg
	for {
		arg, ok := p.arc()
		if !ok {
			return args
		}
		args = append(args, arg)
	}
}
