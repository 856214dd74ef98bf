package dom

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// valueScanner draws CSS tokens from the tdewolff lexer one at a time.
// The attribute grammars here never care about whitespace or commas
// beyond separation, so both are folded away: after next, typ/val hold
// the following substantive token, or ErrorToken once the value is
// exhausted.
type valueScanner struct {
	lexer *css.Lexer

	typ css.TokenType
	val string
}

func scanValue(s string) *valueScanner {
	v := &valueScanner{lexer: css.NewLexer(parse.NewInput(strings.NewReader(s)))}
	v.next()
	return v
}

func (v *valueScanner) next() {
	for {
		typ, data := v.lexer.Next()
		switch typ {
		case css.WhitespaceToken, css.CommaToken:
			continue
		case css.ErrorToken:
			v.typ, v.val = css.ErrorToken, ""
			return
		default:
			v.typ, v.val = typ, string(data)
			return
		}
	}
}

// number returns the current token as a float if it is a number.
func (v *valueScanner) number() (float64, bool) {
	if v.typ != css.NumberToken {
		return 0, false
	}
	n, err := strconv.ParseFloat(v.val, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// percentage returns the current token's value if it is a percentage,
// without rescaling.
func (v *valueScanner) percentage() (float64, bool) {
	if v.typ != css.PercentageToken {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(v.val, "%"), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
