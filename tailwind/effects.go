package tailwind

import (
	"strconv"
	"strings"

	"twc/css"
)

// Opacity is element opacity in [0, 1].
type Opacity float64

func parseOpacity(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) {
		l, err := ParseLength(arbitrary)
		if err != nil {
			return nil, err
		}
		switch {
		case l.Unit == UnitScale && l.Value >= 0 && l.Value <= 1:
		case l.Unit == UnitNone && l.Value >= 0 && l.Value <= 1:
		default:
			return nil, syntaxError(arbitrary, "opacity out of range")
		}
		return Opacity(l.Value), nil
	}
	if len(tokens) == 1 {
		if n, err := strconv.Atoi(tokens[0]); err == nil && n >= 0 && n <= 100 {
			return Opacity(float64(n) / 100), nil
		}
	}
	return nil, syntaxError(strings.Join(tokens, "-"), "unknown opacity")
}

func (o Opacity) String() string {
	return "opacity-[" + formatNumber(float64(o)) + "]"
}

func (o Opacity) Attributes(*Context) css.Attributes {
	return css.NewAttributes("opacity", formatNumber(float64(o)))
}

var blendModes = map[string]struct{}{
	"normal": {}, "multiply": {}, "screen": {}, "overlay": {}, "darken": {},
	"lighten": {}, "color-dodge": {}, "color-burn": {}, "hard-light": {},
	"soft-light": {}, "difference": {}, "exclusion": {}, "hue": {},
	"saturation": {}, "color": {}, "luminosity": {},
}

// Blend sets mix-blend-mode or background-blend-mode.
type Blend struct {
	Background bool
	Mode       string
}

func parseBlend(background bool) func([]string, string, *Context) (Instance, error) {
	return func(tokens []string, arbitrary string, _ *Context) (Instance, error) {
		mode := strings.Join(tokens, "-")
		if arbitrary != "" {
			return nil, syntaxError(arbitrary, "blend mode does not accept arbitrary values")
		}
		if _, ok := blendModes[mode]; ok {
			return Blend{Background: background, Mode: mode}, nil
		}
		// only element blending supports plus-lighter
		if mode == "plus-lighter" && !background {
			return Blend{Mode: mode}, nil
		}
		return nil, syntaxError(mode, "unknown blend mode")
	}
}

func (b Blend) String() string {
	if b.Background {
		return "bg-blend-" + b.Mode
	}
	return "mix-blend-" + b.Mode
}

func (b Blend) Attributes(*Context) css.Attributes {
	if b.Background {
		return css.NewAttributes("background-blend-mode", b.Mode)
	}
	return css.NewAttributes("mix-blend-mode", b.Mode)
}

var shadows = map[string]string{
	"":      "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)",
	"sm":    "0 1px 2px 0 rgb(0 0 0 / 0.05)",
	"md":    "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
	"lg":    "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
	"xl":    "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)",
	"2xl":   "0 25px 50px -12px rgb(0 0 0 / 0.25)",
	"inner": "inset 0 2px 4px 0 rgb(0 0 0 / 0.05)",
	"none":  "0 0 #0000",
}

// Shadow writes --tw-shadow and composes it with rings through box-shadow.
type Shadow struct {
	Name  string
	Value string
}

func parseShadow(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if len(tokens) == 0 && arbitrary == "" {
		return Shadow{Value: shadows[""]}, nil
	}
	if useArbitrary(tokens, arbitrary) {
		return Shadow{Value: decodeArbitrary(arbitrary)}, nil
	}
	name := strings.Join(tokens, "-")
	if v, ok := shadows[name]; ok && name != "" {
		return Shadow{Name: name, Value: v}, nil
	}
	return nil, syntaxError(name, "unknown shadow")
}

func (s Shadow) String() string {
	switch {
	case s.Name != "":
		return "shadow-" + s.Name
	case s.Value == shadows[""]:
		return "shadow"
	}
	return "shadow-[" + strings.ReplaceAll(s.Value, " ", "_") + "]"
}

func (s Shadow) Attributes(*Context) css.Attributes {
	return css.NewAttributes(
		"--tw-shadow", s.Value,
		"box-shadow", ringBoxShadow,
	)
}

var dropShadows = map[string]string{
	"":     "drop-shadow(0 1px 2px rgb(0 0 0 / 0.1)) drop-shadow(0 1px 1px rgb(0 0 0 / 0.06))",
	"sm":   "drop-shadow(0 1px 1px rgb(0 0 0 / 0.05))",
	"md":   "drop-shadow(0 4px 3px rgb(0 0 0 / 0.07)) drop-shadow(0 2px 2px rgb(0 0 0 / 0.06))",
	"lg":   "drop-shadow(0 10px 8px rgb(0 0 0 / 0.04)) drop-shadow(0 4px 3px rgb(0 0 0 / 0.1))",
	"xl":   "drop-shadow(0 20px 13px rgb(0 0 0 / 0.03)) drop-shadow(0 8px 5px rgb(0 0 0 / 0.08))",
	"2xl":  "drop-shadow(0 25px 25px rgb(0 0 0 / 0.15))",
	"none": "drop-shadow(0 0 #0000)",
}

// filterTemplate is the terminal filter declaration over filter custom
// properties.
const filterTemplate = "var(--tw-drop-shadow)"

// DropShadow writes --tw-drop-shadow and applies it through filter.
type DropShadow struct {
	Name  string
	Value string
}

func parseDropShadow(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if len(tokens) == 0 && arbitrary == "" {
		return DropShadow{Value: dropShadows[""]}, nil
	}
	if useArbitrary(tokens, arbitrary) {
		return DropShadow{Value: "drop-shadow(" + decodeArbitrary(arbitrary) + ")"}, nil
	}
	name := strings.Join(tokens, "-")
	if v, ok := dropShadows[name]; ok && name != "" {
		return DropShadow{Name: name, Value: v}, nil
	}
	return nil, syntaxError(name, "unknown drop shadow")
}

func (d DropShadow) String() string {
	switch {
	case d.Name != "":
		return "drop-shadow-" + d.Name
	case d.Value == dropShadows[""]:
		return "drop-shadow"
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(d.Value, "drop-shadow("), ")")
	return "drop-shadow-[" + strings.ReplaceAll(inner, " ", "_") + "]"
}

func (d DropShadow) Attributes(*Context) css.Attributes {
	return css.NewAttributes(
		"--tw-drop-shadow", d.Value,
		"filter", filterTemplate,
	)
}
