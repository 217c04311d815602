package tailwind

import (
	"fmt"
	"strings"

	"twc/css"
)

// Context is the set of registries utilities are rendered against. It is
// shared by reference, so registry changes made after parsing are visible
// to every instance at render time.
type Context struct {
	Screens   *BreakPointSystem
	Colors    *PaletteSystem
	Fonts     *FontSystem
	Preflight *PreflightSystem
}

// NewContext creates context with builtin registries.
func NewContext() *Context {
	return &Context{
		Screens:   BuiltinBreakPoints(),
		Colors:    BuiltinPalette(),
		Fonts:     BuiltinFonts(),
		Preflight: &PreflightSystem{},
	}
}

// Instance is a parsed utility of one CSS feature family. Instances are
// immutable and hold only resolved semantic parameters.
type Instance interface {
	fmt.Stringer
	// Attributes renders declarations of the utility.
	Attributes(ctx *Context) css.Attributes
}

// ringBoxShadow is the terminal value every shadow and ring utility writes:
// each of them sets its own custom property and lets box-shadow combine them.
const ringBoxShadow = "var(--tw-ring-offset-shadow), var(--tw-ring-shadow), var(--tw-shadow, 0 0 #0000)"

// pseudoClasses are supported state variants.
var pseudoClasses = map[string]string{
	"hover":         ":hover",
	"focus":         ":focus",
	"focus-within":  ":focus-within",
	"focus-visible": ":focus-visible",
	"active":        ":active",
	"visited":       ":visited",
	"disabled":      ":disabled",
	"first":         ":first-child",
	"last":          ":last-child",
	"odd":           ":nth-child(odd)",
	"even":          ":nth-child(even)",
}

// Utility is a single class token resolved to instance plus its variants.
type Utility struct {
	// Class is canonical text the utility is registered under.
	Class string
	// Breakpoint is responsive variant name, empty when utility applies to
	// all widths.
	Breakpoint string
	// Pseudo holds state variants in source order.
	Pseudo   []string
	Instance Instance
}

// HasVariants reports whether utility is conditional.
func (u *Utility) HasVariants() bool {
	return u.Breakpoint != "" || len(u.Pseudo) > 0
}

// Selector appends pseudo-class selectors of the utility to base selector.
func (u *Utility) Selector(base string) string {
	if len(u.Pseudo) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, p := range u.Pseudo {
		sb.WriteString(pseudoClasses[p])
	}
	return sb.String()
}

func (u *Utility) String() string {
	return u.Class
}
