package tailwind

import (
	"strings"
)

type colorKind int

const (
	colorPalette colorKind = iota
	colorKeyword
	colorArbitrary
)

var colorKeywords = map[string]string{
	"inherit":     "inherit",
	"current":     "currentColor",
	"transparent": "transparent",
	"black":       "#000",
	"white":       "#fff",
}

// Color is a reference to palette entry, a keyword or a literal value.
// Palette references are resolved at render time.
type Color struct {
	kind  colorKind
	name  string
	shade string
	value string
}

// parseColor handles "red-500", "white" and "[#ff0000]" forms.
func parseColor(tokens []string, arbitrary string, ctx *Context) (Color, error) {
	switch len(tokens) {
	case 0:
		return parseColorArbitrary(arbitrary)
	case 1:
		if tokens[0] == arbitrary {
			return parseColorArbitrary(arbitrary)
		}
		if v, ok := colorKeywords[tokens[0]]; ok {
			return Color{kind: colorKeyword, name: tokens[0], value: v}, nil
		}
		// single color ramps use DEFAULT shade
		if _, ok := ctx.Colors.Get(tokens[0], "DEFAULT"); ok {
			return Color{kind: colorPalette, name: tokens[0], shade: "DEFAULT"}, nil
		}
		return Color{}, lookupError("color", tokens[0])
	case 2:
		if _, ok := ctx.Colors.Get(tokens[0], tokens[1]); !ok {
			return Color{}, lookupError("color", strings.Join(tokens, "-"))
		}
		return Color{kind: colorPalette, name: tokens[0], shade: tokens[1]}, nil
	}
	return Color{}, syntaxError(strings.Join(tokens, "-"), "unknown color")
}

func parseColorArbitrary(arbitrary string) (Color, error) {
	v := decodeArbitrary(arbitrary)
	switch {
	case isHexColor(v):
	case strings.HasSuffix(v, ")") &&
		(strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") ||
			strings.HasPrefix(v, "hsl(") || strings.HasPrefix(v, "hsla(")):
	default:
		return Color{}, syntaxError(arbitrary, "unknown color")
	}
	return Color{kind: colorArbitrary, value: v}, nil
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	switch len(s) - 1 {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s[1:] {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

// Resolve returns CSS color using current palette.
func (c Color) Resolve(ctx *Context) (string, bool) {
	if c.kind != colorPalette {
		return c.value, true
	}
	return ctx.Colors.Get(c.name, c.shade)
}

func (c Color) String() string {
	switch c.kind {
	case colorPalette:
		if c.shade == "DEFAULT" {
			return c.name
		}
		return c.name + "-" + c.shade
	case colorKeyword:
		return c.name
	default:
		return "[" + strings.ReplaceAll(c.value, " ", "_") + "]"
	}
}

// looksLikeColor is used to route bracket payloads shared between color
// and length families.
func looksLikeColor(arbitrary string) bool {
	_, err := parseColorArbitrary(arbitrary)
	return err == nil
}
