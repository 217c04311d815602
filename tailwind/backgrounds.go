package tailwind

import (
	"twc/css"
)

// BackgroundColor sets background-color.
type BackgroundColor struct {
	Color Color
}

func parseBackground(tokens []string, arbitrary string, ctx *Context) (Instance, error) {
	c, err := parseColor(tokens, arbitrary, ctx)
	if err != nil {
		return nil, err
	}
	return BackgroundColor{Color: c}, nil
}

func (b BackgroundColor) String() string {
	return "bg-" + b.Color.String()
}

func (b BackgroundColor) Attributes(ctx *Context) css.Attributes {
	v, ok := b.Color.Resolve(ctx)
	if !ok {
		return css.Attributes{}
	}
	return css.NewAttributes("background-color", v)
}
