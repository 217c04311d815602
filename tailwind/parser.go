package tailwind

import (
	"cmp"
	"slices"
	"strings"
)

type parseFunc func(tokens []string, arbitrary string, ctx *Context) (Instance, error)

type family struct {
	prefix string
	parse  parseFunc
}

// families is ordered by prefix length (longest first), so "ring-offset"
// is tried before "ring" and "bg-blend" before "bg".
var families = func() []family {
	f := []family{
		{"tracking", parseTracking},
		{"leading", parseLeading},
		{"text", parseText},
		{"font", parseFont},
		{"antialiased", parseAntialiased},
		{"subpixel-antialiased", parseSubpixelAntialiased},
		{"underline-offset", parseUnderlineOffset},
		{"opacity", parseOpacity},
		{"mix-blend", parseBlend(false)},
		{"bg-blend", parseBlend(true)},
		{"shadow", parseShadow},
		{"drop-shadow", parseDropShadow},
		{"ring-offset", parseRingOffset},
		{"ring", parseRing},
		{"bg", parseBackground},
	}
	slices.SortStableFunc(f, func(a, b family) int {
		return cmp.Compare(len(b.prefix), len(a.prefix))
	})
	return f
}()

// splitVariants cuts "md:hover:bg-[rgb(0,0,0)]" into variants and utility
// ignoring colons inside brackets.
func splitVariants(class string) ([]string, string) {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				parts = append(parts, class[start:i])
				start = i + 1
			}
		}
	}
	return parts, class[start:]
}

// ParseUtility resolves single class token into a utility. Returned errors
// are *SyntaxError or *LookupError with Class set to the token.
func ParseUtility(class string, ctx *Context) (*Utility, error) {
	u, err := parseUtility(class, ctx)
	if err != nil {
		return nil, withClass(err, class)
	}
	return u, nil
}

func parseUtility(class string, ctx *Context) (*Utility, error) {
	variants, text := splitVariants(class)

	u := &Utility{Class: class}
	for _, v := range variants {
		if _, ok := pseudoClasses[v]; ok {
			u.Pseudo = append(u.Pseudo, v)
			continue
		}
		if _, ok := ctx.Screens.Get(v); !ok {
			return nil, lookupError("breakpoint", v)
		}
		if u.Breakpoint != "" {
			return nil, syntaxError(v, "more than one breakpoint")
		}
		u.Breakpoint = v
	}
	if text == "" {
		return nil, syntaxError(class, "empty utility")
	}

	base, arbitrary, bracketed := splitArbitrary(text)
	if bracketed && arbitrary == "" {
		return nil, syntaxError(text, "empty arbitrary value")
	}

	for _, f := range families {
		rest, ok := strings.CutPrefix(base, f.prefix)
		if !ok || (rest != "" && !strings.HasPrefix(rest, "-")) {
			continue
		}
		var tokens []string
		if rest != "" {
			tokens = strings.Split(rest[1:], "-")
		}
		inst, err := f.parse(tokens, arbitrary, ctx)
		if err != nil {
			return nil, err
		}
		u.Instance = inst
		return u, nil
	}
	return nil, syntaxError(text, "unknown utility")
}
