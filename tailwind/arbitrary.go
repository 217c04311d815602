package tailwind

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Unit of a value produced by arbitrary-value grammar.
type Unit int

const (
	UnitNone  Unit = iota // bare number
	UnitEm                // <number>em
	UnitRem               // <number>rem
	UnitScale             // <number>% converted to fraction
)

func (u Unit) String() string {
	switch u {
	case UnitEm:
		return "em"
	case UnitRem:
		return "rem"
	case UnitScale:
		return "scale"
	default:
		return "number"
	}
}

// Length is a typed numeric value annotated with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

// CSS renders length as a declaration value.
func (l Length) CSS() string {
	switch l.Unit {
	case UnitEm:
		return formatNumber(l.Value) + "em"
	case UnitRem:
		return formatNumber(l.Value) + "rem"
	default:
		return formatNumber(l.Value)
	}
}

// ParseLength recognizes payload forms in order: percentage ("150%" -> scale
// 1.5), rem length ("2rem") and a number with optional "em" suffix.
// Anything else is a SyntaxError naming the input.
func ParseLength(input string) (Length, error) {
	if input == "" {
		return Length{}, syntaxError(input, "empty value")
	}

	l := css.NewLexer(parse.NewInputString(input))
	tt, data := l.Next()
	// single token must consume the whole input
	if next, _ := l.Next(); next != css.ErrorToken || !errors.Is(l.Err(), io.EOF) {
		return Length{}, syntaxError(input, "unexpected trailing characters")
	}

	switch tt {
	case css.PercentageToken:
		v, err := strconv.ParseFloat(string(data[:len(data)-1]), 64)
		if err != nil {
			return Length{}, &SyntaxError{Input: input, Reason: "bad percentage", Err: err}
		}
		return Length{Value: v / 100, Unit: UnitScale}, nil

	case css.DimensionToken:
		lower := bytes.ToLower(data)
		var (
			num  []byte
			unit Unit
		)
		switch {
		case bytes.HasSuffix(lower, []byte("rem")):
			num, unit = data[:len(data)-3], UnitRem
		case bytes.HasSuffix(lower, []byte("em")):
			num, unit = data[:len(data)-2], UnitEm
		default:
			return Length{}, syntaxError(input, "unsupported unit")
		}
		v, err := strconv.ParseFloat(string(num), 64)
		if err != nil {
			return Length{}, &SyntaxError{Input: input, Reason: "bad number", Err: err}
		}
		return Length{Value: v, Unit: unit}, nil

	case css.NumberToken:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return Length{}, &SyntaxError{Input: input, Reason: "bad number", Err: err}
		}
		return Length{Value: v, Unit: UnitNone}, nil
	}
	return Length{}, syntaxError(input, "not a numeric value")
}

// parsePixels accepts bare number or number with "px" suffix.
func parsePixels(input string) (float64, error) {
	l, err := ParseLength(strings.TrimSuffix(input, "px"))
	if err != nil {
		return 0, err
	}
	if l.Unit != UnitNone || l.Value < 0 {
		return 0, syntaxError(input, "pixel value expected")
	}
	return l.Value, nil
}

// useArbitrary reports whether family should handle its arbitrary form:
// nothing left after prefix or a single token which is the payload itself.
func useArbitrary(tokens []string, arbitrary string) bool {
	return len(tokens) == 0 || (len(tokens) == 1 && tokens[0] == arbitrary)
}

// splitArbitrary separates bracketed payload from utility text:
// "leading-[1.4]" -> ("leading", "1.4", true).
func splitArbitrary(utility string) (string, string, bool) {
	if !strings.HasSuffix(utility, "]") {
		return utility, "", false
	}
	base, payload, found := strings.Cut(utility, "[")
	if !found {
		return utility, "", false
	}
	return strings.TrimSuffix(base, "-"), strings.TrimSuffix(payload, "]"), true
}

// decodeArbitrary turns underscores into spaces, the way multi-word
// arbitrary values are written in class names.
func decodeArbitrary(payload string) string {
	return strings.ReplaceAll(payload, "_", " ")
}

// formatNumber renders float without exponent and trailing zeroes.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
