package tailwind

import (
	"strconv"
	"strings"

	"twc/css"
)

// Tracking controls letter spacing, value is always in em.
type Tracking struct {
	Em float64
}

var trackingKeywords = map[string]float64{
	"tighter": -0.05,
	"tight":   -0.25,
	"none":    0,
	"normal":  0,
	"wide":    0.025,
	"wider":   0.05,
	"relaxed": 0.05,
	"widest":  0.1,
	"loose":   0.1,
}

func parseTracking(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) {
		return parseTrackingArbitrary(arbitrary)
	}
	if len(tokens) == 1 {
		if em, ok := trackingKeywords[tokens[0]]; ok {
			return Tracking{Em: em}, nil
		}
		// shorthand: "tracking-2", "tracking-1em"
		return parseTrackingArbitrary(tokens[0])
	}
	return nil, syntaxError(strings.Join(tokens, "-"), "unknown tracking")
}

func parseTrackingArbitrary(arbitrary string) (Instance, error) {
	l, err := ParseLength(arbitrary)
	if err != nil {
		return nil, err
	}
	switch l.Unit {
	case UnitNone, UnitEm:
		return Tracking{Em: l.Value}, nil
	}
	return nil, syntaxError(arbitrary, "tracking expects em value")
}

func (t Tracking) String() string {
	return "tracking-[" + formatNumber(t.Em) + "em]"
}

func (t Tracking) Attributes(*Context) css.Attributes {
	return css.NewAttributes("letter-spacing", formatNumber(t.Em)+"em")
}

// Leading controls line height. Keyword and bracketed number forms produce
// unitless scale, numeric steps produce rem. Normal stands for the
// "line-height: normal" keyword and ignores Length.
type Leading struct {
	Length
	Normal bool
}

var leadingKeywords = map[string]float64{
	"none":    1,
	"tight":   1.25,
	"snug":    1.375,
	"wide":    1.5,
	"relaxed": 1.625,
	"loose":   2,
}

func parseLeading(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) {
		return parseLeadingArbitrary(arbitrary)
	}
	if len(tokens) == 1 {
		if tokens[0] == "normal" {
			return Leading{Normal: true}, nil
		}
		if v, ok := leadingKeywords[tokens[0]]; ok {
			return Leading{Length: Length{Value: v, Unit: UnitScale}}, nil
		}
		l, err := ParseLength(tokens[0])
		if err != nil {
			return nil, err
		}
		if l.Unit != UnitNone {
			// shorthand: "leading-150%", "leading-2rem"
			return Leading{Length: l}, nil
		}
		// spacing steps, 1 step is 0.25rem
		if l.Value < 0 {
			return nil, syntaxError(tokens[0], "negative leading")
		}
		return Leading{Length: Length{Value: l.Value * 0.25, Unit: UnitRem}}, nil
	}
	return nil, syntaxError(strings.Join(tokens, "-"), "unknown leading")
}

func parseLeadingArbitrary(arbitrary string) (Instance, error) {
	l, err := ParseLength(arbitrary)
	if err != nil {
		return nil, err
	}
	if l.Unit == UnitNone {
		l.Unit = UnitScale
	}
	return Leading{Length: l}, nil
}

func (l Leading) value() string {
	if l.Normal {
		return "normal"
	}
	return l.CSS()
}

func (l Leading) String() string {
	if l.Normal {
		return "leading-normal"
	}
	return "leading-[" + l.CSS() + "]"
}

func (l Leading) Attributes(*Context) css.Attributes {
	return css.NewAttributes("line-height", l.value())
}

// TextSize either references type scale step or carries explicit length.
type TextSize struct {
	Name   string
	Length Length
}

func (f TextSize) String() string {
	if f.Name != "" {
		return "text-" + f.Name
	}
	return "text-[" + f.Length.CSS() + "]"
}

func (f TextSize) Attributes(ctx *Context) css.Attributes {
	if f.Name == "" {
		return css.NewAttributes("font-size", f.Length.CSS())
	}
	step, ok := ctx.Fonts.Size(f.Name)
	if !ok {
		return css.Attributes{}
	}
	return css.NewAttributes(
		"font-size", formatNumber(step.Size)+"rem",
		"line-height", step.Height,
	)
}

// TextAlign sets text-align.
type TextAlign string

var textAlignments = map[string]struct{}{
	"left": {}, "center": {}, "right": {}, "justify": {}, "start": {}, "end": {},
}

func (a TextAlign) String() string {
	return "text-" + string(a)
}

func (a TextAlign) Attributes(*Context) css.Attributes {
	return css.NewAttributes("text-align", string(a))
}

// TextColor sets foreground color.
type TextColor struct {
	Color Color
}

func (c TextColor) String() string {
	return "text-" + c.Color.String()
}

func (c TextColor) Attributes(ctx *Context) css.Attributes {
	v, ok := c.Color.Resolve(ctx)
	if !ok {
		return css.Attributes{}
	}
	return css.NewAttributes("color", v)
}

// parseText routes "text-*" between alignment, type scale and color.
func parseText(tokens []string, arbitrary string, ctx *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) {
		if looksLikeColor(arbitrary) {
			c, err := parseColorArbitrary(arbitrary)
			if err != nil {
				return nil, err
			}
			return TextColor{Color: c}, nil
		}
		l, err := ParseLength(arbitrary)
		if err != nil {
			return nil, err
		}
		if l.Unit == UnitNone || l.Unit == UnitScale {
			return nil, syntaxError(arbitrary, "font size expects em or rem value")
		}
		return TextSize{Length: l}, nil
	}
	if len(tokens) == 1 {
		if _, ok := textAlignments[tokens[0]]; ok {
			return TextAlign(tokens[0]), nil
		}
		if _, ok := ctx.Fonts.Size(tokens[0]); ok {
			return TextSize{Name: tokens[0]}, nil
		}
	}
	c, err := parseColor(tokens, arbitrary, ctx)
	if err != nil {
		return nil, err
	}
	return TextColor{Color: c}, nil
}

// FontWeight is numeric font weight.
type FontWeight int

var fontWeights = map[string]FontWeight{
	"thin":       100,
	"extralight": 200,
	"light":      300,
	"normal":     400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"extrabold":  800,
	"black":      900,
}

func (w FontWeight) String() string {
	for name, v := range fontWeights {
		if v == w {
			return "font-" + name
		}
	}
	return "font-[" + strconv.Itoa(int(w)) + "]"
}

func (w FontWeight) Attributes(*Context) css.Attributes {
	return css.NewAttributes("font-weight", strconv.Itoa(int(w)))
}

// FontFamily references named font stack or carries literal one.
type FontFamily struct {
	Name  string
	Stack string
}

func (f FontFamily) String() string {
	if f.Name != "" {
		return "font-" + f.Name
	}
	return "font-[" + strings.ReplaceAll(f.Stack, " ", "_") + "]"
}

func (f FontFamily) Attributes(ctx *Context) css.Attributes {
	if f.Name == "" {
		return css.NewAttributes("font-family", f.Stack)
	}
	stack, ok := ctx.Fonts.Family(f.Name)
	if !ok {
		return css.Attributes{}
	}
	return css.NewAttributes("font-family", stack)
}

// parseFont routes "font-*" between weight and family.
func parseFont(tokens []string, arbitrary string, ctx *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) {
		if arbitrary == "" {
			return nil, syntaxError(arbitrary, "empty value")
		}
		if n, err := strconv.Atoi(arbitrary); err == nil {
			if n < 1 || n > 1000 {
				return nil, syntaxError(arbitrary, "font weight out of range")
			}
			return FontWeight(n), nil
		}
		return FontFamily{Stack: decodeArbitrary(arbitrary)}, nil
	}
	name := strings.Join(tokens, "-")
	if w, ok := fontWeights[name]; ok {
		return w, nil
	}
	if _, ok := ctx.Fonts.Family(name); ok {
		return FontFamily{Name: name}, nil
	}
	return nil, lookupError("font", name)
}

// FontSmoothing selects glyph antialiasing.
type FontSmoothing bool

func parseAntialiased(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if len(tokens) != 0 || arbitrary != "" {
		return nil, syntaxError(strings.Join(tokens, "-")+arbitrary, "unexpected value")
	}
	return FontSmoothing(true), nil
}

func parseSubpixelAntialiased(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if len(tokens) != 0 || arbitrary != "" {
		return nil, syntaxError(strings.Join(tokens, "-")+arbitrary, "unexpected value")
	}
	return FontSmoothing(false), nil
}

func (f FontSmoothing) String() string {
	if f {
		return "antialiased"
	}
	return "subpixel-antialiased"
}

func (f FontSmoothing) Attributes(*Context) css.Attributes {
	if f {
		return css.NewAttributes(
			"-webkit-font-smoothing", "antialiased",
			"-moz-osx-font-smoothing", "grayscale",
		)
	}
	return css.NewAttributes(
		"-webkit-font-smoothing", "auto",
		"-moz-osx-font-smoothing", "auto",
	)
}

// UnderlineOffset sets text-underline-offset, Auto wins over Length.
type UnderlineOffset struct {
	Auto   bool
	Length Length
}

var underlineOffsets = map[string]float64{"0": 0, "1": 1, "2": 2, "4": 4, "8": 8}

func parseUnderlineOffset(tokens []string, arbitrary string, _ *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) {
		if px, err := parsePixels(arbitrary); err == nil {
			return UnderlineOffset{Length: Length{Value: px}}, nil
		}
		l, err := ParseLength(arbitrary)
		if err != nil {
			return nil, err
		}
		if l.Unit != UnitEm && l.Unit != UnitRem {
			return nil, syntaxError(arbitrary, "underline offset expects length")
		}
		return UnderlineOffset{Length: l}, nil
	}
	if len(tokens) == 1 {
		if tokens[0] == "auto" {
			return UnderlineOffset{Auto: true}, nil
		}
		if px, ok := underlineOffsets[tokens[0]]; ok {
			return UnderlineOffset{Length: Length{Value: px}}, nil
		}
	}
	return nil, syntaxError(strings.Join(tokens, "-"), "unknown underline offset")
}

func (u UnderlineOffset) value() string {
	switch {
	case u.Auto:
		return "auto"
	case u.Length.Unit == UnitNone:
		return formatNumber(u.Length.Value) + "px"
	default:
		return u.Length.CSS()
	}
}

func (u UnderlineOffset) String() string {
	return "underline-offset-[" + u.value() + "]"
}

func (u UnderlineOffset) Attributes(*Context) css.Attributes {
	return css.NewAttributes("text-underline-offset", u.value())
}
