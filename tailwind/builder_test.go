package tailwind

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b := New(zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))))
	b.DisablePreflight(true)
	return b
}

func bundle(t *testing.T, b *Builder) string {
	t.Helper()
	out, err := b.Bundle()
	if err != nil {
		t.Fatalf("Bundle() error: %v", err)
	}
	return out
}

func TestTrace_RingColor(t *testing.T) {
	b := New(zaptest.NewLogger(t))

	class, err := b.Trace("ring-red-500")
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if class != "ring-red-500" {
		t.Errorf("Trace() = %q, want class text unchanged", class)
	}

	out := bundle(t, b)
	if !strings.Contains(out, "--tw-ring-offset-color:") {
		t.Errorf("bundle misses --tw-ring-offset-color declaration:\n%s", out)
	}
	want := ".ring-red-500 {\n" +
		"  --tw-ring-color: #ef4444;\n" +
		"  box-shadow: var(--tw-ring-offset-shadow), var(--tw-ring-shadow), var(--tw-shadow, 0 0 #0000);\n" +
		"}\n"
	if !strings.HasSuffix(out, want) {
		t.Errorf("bundle does not end with utility rule:\n%s", out)
	}
	if !strings.HasPrefix(out, strings.TrimRight(b.Preflight(), "\n")) {
		t.Error("bundle does not start with preflight")
	}
}

func TestTrace_BadUtility(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := New(zap.New(core))
	b.DisablePreflight(true)

	class, err := b.Trace("tracking-bogus")
	if class != "tracking-bogus" {
		t.Errorf("Trace() = %q, want original text", class)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if se.Input != "bogus" {
		t.Errorf("SyntaxError.Input = %q, want %q", se.Input, "bogus")
	}
	if len(b.Utilities()) != 0 {
		t.Errorf("builder state mutated: %v", b.Utilities())
	}
	if out := bundle(t, b); out != "" {
		t.Errorf("bundle = %q, want empty", out)
	}

	entries := logs.FilterField(zap.String("class", "tracking-bogus")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning for bad utility, got %d", logs.Len())
	}
}

func TestTrace_PartialFailure(t *testing.T) {
	b := newTestBuilder(t)

	class, err := b.Trace("tracking-bogus tracking-wide")
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if class != "tracking-bogus tracking-wide" {
		t.Errorf("Trace() = %q", class)
	}
	want := ".tracking-wide {\n  letter-spacing: 0.025em;\n}\n"
	if out := bundle(t, b); out != want {
		t.Errorf("bundle =\n%s\nwant\n%s", out, want)
	}
}

func TestTrace_AllFailuresCombined(t *testing.T) {
	b := newTestBuilder(t)

	_, err := b.Trace("tracking-bogus bg-nope-500")
	if err == nil {
		t.Fatal("expected error")
	}
	var (
		se *SyntaxError
		le *LookupError
	)
	if !errors.As(err, &se) || !errors.As(err, &le) {
		t.Errorf("expected both syntax and lookup errors, got %v", err)
	}
}

func TestTrace_EmptyClass(t *testing.T) {
	b := newTestBuilder(t)
	class, err := b.Trace("   ")
	if err != nil || class != "   " {
		t.Errorf("Trace() = %q, %v", class, err)
	}
}

func TestBundle_Deterministic(t *testing.T) {
	classes := []string{"tracking-wide", "md:leading-7", "bg-red-500 hover:bg-blue-500", "sm:opacity-50", "p-bogus", "ring-2"}

	b1 := newTestBuilder(t)
	for _, c := range classes {
		b1.Trace(c) //nolint:errcheck
	}
	b2 := newTestBuilder(t)
	for i := len(classes) - 1; i >= 0; i-- {
		b2.Trace(classes[i]) //nolint:errcheck
	}

	out1, out2 := bundle(t, b1), bundle(t, b2)
	if out1 != out2 {
		t.Errorf("bundles differ:\n%s\n---\n%s", out1, out2)
	}
	if again := bundle(t, b1); again != out1 {
		t.Error("repeated Bundle() is not byte identical")
	}
}

func TestBundle_Deduplicated(t *testing.T) {
	b := newTestBuilder(t)
	b.Trace("tracking-wide tracking-wide") //nolint:errcheck
	b.Trace("tracking-wide")               //nolint:errcheck

	if n := strings.Count(bundle(t, b), "letter-spacing: 0.025em;"); n != 1 {
		t.Errorf("declaration found %d times, want 1", n)
	}
}

func TestBundle_MediaBlocks(t *testing.T) {
	b := newTestBuilder(t)
	b.Trace("lg:tracking-wide md:tracking-wide tracking-tight") //nolint:errcheck

	want := `.tracking-tight {
  letter-spacing: -0.25em;
}

@media (min-width: 768px) {
  .md\:tracking-wide {
    letter-spacing: 0.025em;
  }
}

@media (min-width: 1024px) {
  .lg\:tracking-wide {
    letter-spacing: 0.025em;
  }
}
`
	if out := bundle(t, b); out != want {
		t.Errorf("bundle =\n%s\nwant\n%s", out, want)
	}
}

func TestBundle_NaturalOrder(t *testing.T) {
	b := newTestBuilder(t)
	b.Trace("leading-10 leading-2") //nolint:errcheck

	out := bundle(t, b)
	if strings.Index(out, ".leading-2 ") > strings.Index(out, ".leading-10 ") {
		t.Errorf("selectors are not in natural order:\n%s", out)
	}
}

func TestBundle_LateBinding(t *testing.T) {
	b := newTestBuilder(t)
	b.Trace("bg-red-500 text-lg") //nolint:errcheck

	b.AddColor("red", Palette{"500": "#010203"})
	b.AddFontSize("lg", FontSize{Size: 2, Height: "3rem"})
	b.AddBreakpoint("md", 700)

	out := bundle(t, b)
	for _, want := range []string{"background-color: #010203;", "font-size: 2rem;", "line-height: 3rem;"} {
		if !strings.Contains(out, want) {
			t.Errorf("bundle misses %q:\n%s", want, out)
		}
	}
}

func TestBundle_CustomRegistries(t *testing.T) {
	b := newTestBuilder(t)
	b.AddColor("brand", Palette{"DEFAULT": "#abcdef", "500": "#123456"})
	b.AddBreakpoint("tablet", 900)
	b.AddFontFamily("display", "Oswald, sans-serif")

	if _, err := b.Trace("bg-brand text-brand-500 tablet:font-display"); err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	out := bundle(t, b)
	for _, want := range []string{
		".bg-brand {\n  background-color: #abcdef;\n}",
		".text-brand-500 {\n  color: #123456;\n}",
		"@media (min-width: 900px) {\n  .tablet\\:font-display {\n    font-family: Oswald, sans-serif;\n  }\n}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("bundle misses %q:\n%s", want, out)
		}
	}
}

func TestBundle_Preflight(t *testing.T) {
	b := New(nil)
	b.AddPreflight("body { margin: 1px; }")

	out := bundle(t, b)
	if !strings.Contains(out, "--tw-ring-offset-color: #fff;") {
		t.Error("builtin preflight missing")
	}
	if !strings.HasSuffix(out, "body { margin: 1px; }\n") {
		t.Errorf("custom preflight is not appended:\n%s", out[len(out)-100:])
	}

	b.DisablePreflight(true)
	if out := bundle(t, b); out != "" {
		t.Errorf("bundle = %q, want empty", out)
	}
}

func TestTrace_MergeConflicts(t *testing.T) {
	b := newTestBuilder(t)
	b.SetMergeConflicts(true)

	class, err := b.Trace("bg-red-500 bg-blue-500")
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if class != "bg-blue-500" {
		t.Errorf("Trace() = %q, want %q", class, "bg-blue-500")
	}
	if strings.Contains(bundle(t, b), "bg-red-500") {
		t.Error("conflicting utility is still registered")
	}
}

func TestInline(t *testing.T) {
	b := newTestBuilder(t)

	class, style, err := b.Inline("tracking-wide hover:bg-red-500 bg-red-500 junk-class")
	if err != nil {
		t.Fatalf("Inline() error: %v", err)
	}
	if class != "hover:bg-red-500 junk-class" {
		t.Errorf("class = %q", class)
	}
	if style != "background-color: #ef4444; letter-spacing: 0.025em;" {
		t.Errorf("style = %q", style)
	}
	if out := bundle(t, b); out != "" {
		t.Errorf("inline mode produced stylesheet: %q", out)
	}

	if _, _, err := b.Inline("hover:bg-red-500"); !errors.Is(err, ErrNoUtilities) {
		t.Errorf("expected ErrNoUtilities, got %v", err)
	}
}

func TestScope(t *testing.T) {
	b := newTestBuilder(t)

	class, scoped, err := b.Scope("tracking-wide hover:bg-red-500")
	if err != nil {
		t.Fatalf("Scope() error: %v", err)
	}
	if class != "tracking-wide hover:bg-red-500" {
		t.Errorf("class = %q", class)
	}
	if !strings.HasPrefix(scoped, ScopePrefix) || len(scoped) != len(ScopePrefix)+TokenLength {
		t.Errorf("scoped class = %q", scoped)
	}

	_, again, _ := b.Scope("hover:bg-red-500  tracking-wide tracking-wide")
	if again != scoped {
		t.Errorf("same utilities produced different tokens: %q and %q", scoped, again)
	}
	_, other, _ := b.Scope("tracking-wider")
	if other == scoped {
		t.Error("different utilities produced the same token")
	}

	out := bundle(t, b)
	for _, want := range []string{
		"." + scoped + " {\n  letter-spacing: 0.025em;\n}",
		"." + scoped + ":hover {\n  background-color: #ef4444;\n}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("bundle misses %q:\n%s", want, out)
		}
	}

	if _, _, err := b.Scope(""); !errors.Is(err, ErrNoUtilities) {
		t.Errorf("expected ErrNoUtilities, got %v", err)
	}
}

func TestDataKeyAndValue(t *testing.T) {
	b := newTestBuilder(t)

	_, key, err := b.DataKey("opacity-50")
	if err != nil {
		t.Fatalf("DataKey() error: %v", err)
	}
	if len(key) != TokenLength {
		t.Fatalf("key length = %d, want %d", len(key), TokenLength)
	}
	attr := DataKeyAttribute(key)
	if attr != "data-tw-"+key[1:] || len(strings.TrimPrefix(attr, "data-tw-")) != 11 {
		t.Errorf("DataKeyAttribute = %q", attr)
	}

	_, value, err := b.DataValue("opacity-50")
	if err != nil {
		t.Fatalf("DataValue() error: %v", err)
	}
	if len(value) != TokenLength || len(DataValueText(value)) != 11 {
		t.Errorf("value = %q", value)
	}

	out := bundle(t, b)
	for _, want := range []string{
		"[" + attr + "] {\n  opacity: 0.5;\n}",
		`[data-tw="` + value[1:] + `"] {` + "\n  opacity: 0.5;\n}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("bundle misses %q:\n%s", want, out)
		}
	}
}

func TestBuilder_Concurrent(t *testing.T) {
	b := newTestBuilder(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Trace(fmt.Sprintf("opacity-%d tracking-wide", i*5)) //nolint:errcheck
			b.Scope("bg-red-500 ring")                             //nolint:errcheck
		}()
	}
	wg.Wait()

	if n := len(b.Utilities()); n != 16+3 {
		t.Errorf("registered %d utilities, want %d", n, 16+3)
	}
}

func TestBuilder_Describe(t *testing.T) {
	b := New(zaptest.NewLogger(t))
	if _, _, err := b.Scope("md:leading-tight opacity-50"); err != nil {
		t.Fatal(err)
	}

	tree := b.Describe()
	for _, want := range []string{
		"utilities: 2\n",
		"  md:leading-tight\n    breakpoint: \"md\"\n",
		"    line-height: 1.25;\n",
		"  opacity-50\n",
		"selectors: 1\n  .tw-",
		"    class: \"opacity-50\"\n",
	} {
		if !strings.Contains(tree, want) {
			t.Errorf("Describe() misses %q:\n%s", want, tree)
		}
	}
}
