package tailwind

import (
	"twc/css"
)

const defaultRingWidth = 3

// RingWidth draws outline ring of the given width through box-shadow.
type RingWidth struct {
	Px float64
}

func (r RingWidth) String() string {
	return "ring-[" + formatNumber(r.Px) + "px]"
}

func (r RingWidth) Attributes(*Context) css.Attributes {
	return css.NewAttributes(
		"--tw-ring-offset-shadow", "var(--tw-ring-inset) 0 0 0 var(--tw-ring-offset-width) var(--tw-ring-offset-color)",
		"--tw-ring-shadow", "var(--tw-ring-inset) 0 0 0 calc("+formatNumber(r.Px)+"px + var(--tw-ring-offset-width)) var(--tw-ring-color)",
		"box-shadow", ringBoxShadow,
	)
}

// RingInset draws ring inside of the element.
type RingInset struct{}

func (RingInset) String() string {
	return "ring-inset"
}

func (RingInset) Attributes(*Context) css.Attributes {
	return css.NewAttributes("--tw-ring-inset", "inset")
}

// RingColor sets color of the ring.
type RingColor struct {
	Color Color
}

func (r RingColor) String() string {
	return "ring-" + r.Color.String()
}

func (r RingColor) Attributes(ctx *Context) css.Attributes {
	v, ok := r.Color.Resolve(ctx)
	if !ok {
		return css.Attributes{}
	}
	return css.NewAttributes(
		"--tw-ring-color", v,
		"box-shadow", ringBoxShadow,
	)
}

// parseRing routes "ring-*" between width, inset and color.
func parseRing(tokens []string, arbitrary string, ctx *Context) (Instance, error) {
	if len(tokens) == 0 && arbitrary == "" {
		return RingWidth{Px: defaultRingWidth}, nil
	}
	if useArbitrary(tokens, arbitrary) {
		if looksLikeColor(arbitrary) {
			c, err := parseColorArbitrary(arbitrary)
			if err != nil {
				return nil, err
			}
			return RingColor{Color: c}, nil
		}
		px, err := parsePixels(arbitrary)
		if err != nil {
			return nil, err
		}
		return RingWidth{Px: px}, nil
	}
	if len(tokens) == 1 {
		if tokens[0] == "inset" {
			return RingInset{}, nil
		}
		if px, err := parsePixels(tokens[0]); err == nil {
			return RingWidth{Px: px}, nil
		}
	}
	c, err := parseColor(tokens, arbitrary, ctx)
	if err != nil {
		return nil, err
	}
	return RingColor{Color: c}, nil
}

// RingOffsetWidth sets gap between element and its ring.
type RingOffsetWidth struct {
	Px float64
}

func (r RingOffsetWidth) String() string {
	return "ring-offset-[" + formatNumber(r.Px) + "px]"
}

func (r RingOffsetWidth) Attributes(*Context) css.Attributes {
	return css.NewAttributes(
		"--tw-ring-offset-width", formatNumber(r.Px)+"px",
		"box-shadow", ringBoxShadow,
	)
}

// RingOffsetColor sets color of the gap between element and its ring.
type RingOffsetColor struct {
	Color Color
}

func (r RingOffsetColor) String() string {
	return "ring-offset-" + r.Color.String()
}

func (r RingOffsetColor) Attributes(ctx *Context) css.Attributes {
	v, ok := r.Color.Resolve(ctx)
	if !ok {
		return css.Attributes{}
	}
	return css.NewAttributes(
		"--tw-ring-offset-color", v,
		"box-shadow", ringBoxShadow,
	)
}

// parseRingOffset routes "ring-offset-*" between width and color, color
// parsing is delegated to generic color parser.
func parseRingOffset(tokens []string, arbitrary string, ctx *Context) (Instance, error) {
	if useArbitrary(tokens, arbitrary) && !looksLikeColor(arbitrary) {
		px, err := parsePixels(arbitrary)
		if err != nil {
			return nil, err
		}
		return RingOffsetWidth{Px: px}, nil
	}
	if len(tokens) == 1 {
		if px, err := parsePixels(tokens[0]); err == nil {
			return RingOffsetWidth{Px: px}, nil
		}
	}
	c, err := parseColor(tokens, arbitrary, ctx)
	if err != nil {
		return nil, err
	}
	return RingOffsetColor{Color: c}, nil
}
