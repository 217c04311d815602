package tailwind

import (
	"errors"
	"slices"
	"testing"
)

const boxShadow = "box-shadow: var(--tw-ring-offset-shadow), var(--tw-ring-shadow), var(--tw-shadow, 0 0 #0000);"

func render(t *testing.T, ctx *Context, class string) string {
	t.Helper()
	u, err := ParseUtility(class, ctx)
	if err != nil {
		t.Fatalf("ParseUtility(%q) error: %v", class, err)
	}
	attrs := u.Instance.Attributes(ctx)
	return attrs.InlineStyle()
}

func TestParseUtility_Families(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{"tracking-wide", "letter-spacing: 0.025em;"},
		{"tracking-tight", "letter-spacing: -0.25em;"},
		{"tracking-normal", "letter-spacing: 0em;"},
		{"tracking-2", "letter-spacing: 2em;"},
		{"tracking-1em", "letter-spacing: 1em;"},
		{"leading-[150%]", "line-height: 1.5;"},
		{"leading-[2rem]", "line-height: 2rem;"},
		{"leading-[1.4]", "line-height: 1.4;"},
		{"leading-7", "line-height: 1.75rem;"},
		{"leading-snug", "line-height: 1.375;"},
		{"leading-wide", "line-height: 1.5;"},
		{"leading-normal", "line-height: normal;"},
		{"leading-150%", "line-height: 1.5;"},
		{"leading-2rem", "line-height: 2rem;"},
		{"text-lg", "font-size: 1.125rem; line-height: 1.75rem;"},
		{"text-[2rem]", "font-size: 2rem;"},
		{"text-center", "text-align: center;"},
		{"text-red-500", "color: #ef4444;"},
		{"text-current", "color: currentColor;"},
		{"text-[#123456]", "color: #123456;"},
		{"font-bold", "font-weight: 700;"},
		{"font-[550]", "font-weight: 550;"},
		{"font-serif", `font-family: ui-serif, Georgia, Cambria, "Times New Roman", Times, serif;`},
		{"font-[Inter,_sans-serif]", "font-family: Inter, sans-serif;"},
		{"antialiased", "-moz-osx-font-smoothing: grayscale; -webkit-font-smoothing: antialiased;"},
		{"subpixel-antialiased", "-moz-osx-font-smoothing: auto; -webkit-font-smoothing: auto;"},
		{"underline-offset-4", "text-underline-offset: 4px;"},
		{"underline-offset-auto", "text-underline-offset: auto;"},
		{"underline-offset-[0.2em]", "text-underline-offset: 0.2em;"},
		{"opacity-50", "opacity: 0.5;"},
		{"opacity-0", "opacity: 0;"},
		{"mix-blend-multiply", "mix-blend-mode: multiply;"},
		{"mix-blend-plus-lighter", "mix-blend-mode: plus-lighter;"},
		{"bg-blend-color-dodge", "background-blend-mode: color-dodge;"},
		{"shadow-sm", "--tw-shadow: 0 1px 2px 0 rgb(0 0 0 / 0.05); " + boxShadow},
		{"shadow-none", "--tw-shadow: 0 0 #0000; " + boxShadow},
		{"shadow-[0_0_2px_red]", "--tw-shadow: 0 0 2px red; " + boxShadow},
		{"drop-shadow", "--tw-drop-shadow: drop-shadow(0 1px 2px rgb(0 0 0 / 0.1)) drop-shadow(0 1px 1px rgb(0 0 0 / 0.06)); filter: var(--tw-drop-shadow);"},
		{"drop-shadow-2xl", "--tw-drop-shadow: drop-shadow(0 25px 25px rgb(0 0 0 / 0.15)); filter: var(--tw-drop-shadow);"},
		{"drop-shadow-[0_35px_35px_red]", "--tw-drop-shadow: drop-shadow(0 35px 35px red); filter: var(--tw-drop-shadow);"},
		{"ring", "--tw-ring-offset-shadow: var(--tw-ring-inset) 0 0 0 var(--tw-ring-offset-width) var(--tw-ring-offset-color); " +
			"--tw-ring-shadow: var(--tw-ring-inset) 0 0 0 calc(3px + var(--tw-ring-offset-width)) var(--tw-ring-color); " + boxShadow},
		{"ring-inset", "--tw-ring-inset: inset;"},
		{"ring-red-500", "--tw-ring-color: #ef4444; " + boxShadow},
		{"ring-[#00ff00]", "--tw-ring-color: #00ff00; " + boxShadow},
		{"ring-offset-2", "--tw-ring-offset-width: 2px; " + boxShadow},
		{"ring-offset-red-500", "--tw-ring-offset-color: #ef4444; " + boxShadow},
		{"ring-offset-white", "--tw-ring-offset-color: #fff; " + boxShadow},
		{"bg-red-500", "background-color: #ef4444;"},
		{"bg-transparent", "background-color: transparent;"},
		{"bg-[rgb(0_0_0)]", "background-color: rgb(0 0 0);"},
	}

	ctx := NewContext()
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			if got := render(t, ctx, tt.class); got != tt.want {
				t.Errorf("render(%q)\n got: %s\nwant: %s", tt.class, got, tt.want)
			}
		})
	}
}

func TestParseUtility_KeywordMatchesArbitrary(t *testing.T) {
	pairs := [][2]string{
		{"tracking-wide", "tracking-[0.025em]"},
		{"tracking-wide", "tracking-[0.025]"},
		{"tracking-tighter", "tracking-[-0.05em]"},
		{"leading-wide", "leading-[150%]"},
		{"tracking-2", "tracking-[2em]"},
		{"leading-7", "leading-[1.75rem]"},
		{"opacity-50", "opacity-[50%]"},
		{"opacity-50", "opacity-[0.5]"},
		{"font-bold", "font-[700]"},
		{"ring-2", "ring-[2px]"},
		{"ring-offset-4", "ring-offset-[4px]"},
		{"underline-offset-8", "underline-offset-[8px]"},
		{"bg-white", "bg-[#fff]"},
	}

	ctx := NewContext()
	for _, p := range pairs {
		if a, b := render(t, ctx, p[0]), render(t, ctx, p[1]); a != b {
			t.Errorf("%q renders %q, %q renders %q", p[0], a, p[1], b)
		}
	}
}

func TestParseUtility_LeadingUnitsDiffer(t *testing.T) {
	ctx := NewContext()
	scale, err := ParseUtility("leading-[150%]", ctx)
	if err != nil {
		t.Fatal(err)
	}
	rem, err := ParseUtility("leading-[2rem]", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := scale.Instance.(Leading).Length; got != (Length{Value: 1.5, Unit: UnitScale}) {
		t.Errorf("leading-[150%%] = %+v", got)
	}
	if got := rem.Instance.(Leading).Length; got != (Length{Value: 2, Unit: UnitRem}) {
		t.Errorf("leading-[2rem] = %+v", got)
	}
}

func TestParseUtility_Tracking(t *testing.T) {
	u, err := ParseUtility("tracking-wide", NewContext())
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := u.Instance.(Tracking); !ok || got.Em != 0.025 {
		t.Errorf("tracking-wide = %#v, want Tracking{Em: 0.025}", u.Instance)
	}
}

func TestParseUtility_Variants(t *testing.T) {
	ctx := NewContext()

	u, err := ParseUtility("md:hover:focus:bg-[rgb(1,2,3)]", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if u.Breakpoint != "md" {
		t.Errorf("Breakpoint = %q, want md", u.Breakpoint)
	}
	if !slices.Equal(u.Pseudo, []string{"hover", "focus"}) {
		t.Errorf("Pseudo = %v", u.Pseudo)
	}
	if got := u.Selector(".x"); got != ".x:hover:focus" {
		t.Errorf("Selector = %q", got)
	}
	if got := render(t, ctx, u.Class); got != "background-color: rgb(1,2,3);" {
		t.Errorf("render = %q", got)
	}

	u, err = ParseUtility("odd:opacity-10", ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Selector(".y"); got != ".y:nth-child(odd)" {
		t.Errorf("Selector = %q", got)
	}
}

func TestParseUtility_Errors(t *testing.T) {
	tests := []struct {
		class  string
		syntax bool
		input  string
	}{
		{"tracking-bogus", true, "bogus"},
		{"tracking-[3px]", true, "3px"},
		{"tracking-3px", true, "3px"},
		{"tracking-1rem", true, "1rem"},
		{"leading-[abc]", true, "abc"},
		{"leading-very-loose", true, "very-loose"},
		{"opacity-150", true, "150"},
		{"opacity-[2]", true, "2"},
		{"mix-blend-sideways", true, "sideways"},
		{"bg-blend-plus-lighter", true, "plus-lighter"},
		{"shadow-huge", true, "huge"},
		{"drop-shadow-inner", true, "inner"},
		{"font-[0]", true, "0"},
		{"ring-[]", true, "ring-[]"},
		{"foo-bar", true, "foo-bar"},
		{"sm:md:bg-red-500", true, "md"},
		{"bg-[#12]", true, "#12"},
		{"bg-nope-500", false, "nope-500"},
		{"bg-red-550", false, "red-550"},
		{"font-fancy", false, "fancy"},
		{"xx:bg-red-500", false, "xx"},
	}

	ctx := NewContext()
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			_, err := ParseUtility(tt.class, ctx)
			if err == nil {
				t.Fatalf("ParseUtility(%q) expected error", tt.class)
			}
			if tt.syntax {
				var se *SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
				}
				if se.Input != tt.input || se.Class != tt.class {
					t.Errorf("SyntaxError = {Class: %q, Input: %q}, want {%q, %q}", se.Class, se.Input, tt.class, tt.input)
				}
				return
			}
			var le *LookupError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LookupError, got %T: %v", err, err)
			}
			if le.Name != tt.input || le.Class != tt.class {
				t.Errorf("LookupError = {Class: %q, Name: %q}, want {%q, %q}", le.Class, le.Name, tt.class, tt.input)
			}
			if !errors.Is(err, ErrUndefined) {
				t.Errorf("errors.Is(%v, ErrUndefined) = false", err)
			}
		})
	}
}

func TestSplitVariants(t *testing.T) {
	variants, utility := splitVariants("lg:hover:bg-[url(a:b)]")
	if !slices.Equal(variants, []string{"lg", "hover"}) || utility != "bg-[url(a:b)]" {
		t.Errorf("splitVariants = %v, %q", variants, utility)
	}
	variants, utility = splitVariants("tracking-wide")
	if len(variants) != 0 || utility != "tracking-wide" {
		t.Errorf("splitVariants = %v, %q", variants, utility)
	}
}
