package css

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Quote returns s as a double quoted CSS string.
func Quote(s string) string {
	return `"` + cssEscapeDoubleQuoted(s) + `"`
}

// EscapeIdent escapes a class name so it could be used in a selector, e.g.
// "md:w-[50%]" becomes "md\:w-\[50\%\]".
func EscapeIdent(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-', r >= 0x80:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				// leading digit must be written as code point
				fmt.Fprintf(&b, `\%x `, r)
				continue
			}
			b.WriteRune(r)
		case r == ' ':
			b.WriteString(`\ `)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Attribute is a single CSS declaration.
type Attribute struct {
	Name  string
	Value string
}

func (a Attribute) String() string {
	return a.Name + ": " + a.Value + ";"
}

func compareAttributes(a, b Attribute) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// Attributes is an ordered set of declarations. Items are kept sorted by
// property name then value, identical declarations collapse. The zero value
// is an empty set ready to use.
type Attributes struct {
	items []Attribute
}

// NewAttributes creates set from name/value pairs.
func NewAttributes(pairs ...string) Attributes {
	var set Attributes
	for i := 0; i+1 < len(pairs); i += 2 {
		set.Insert(pairs[i], pairs[i+1])
	}
	return set
}

// Insert adds declaration to the set, returns false if it was already there.
func (s *Attributes) Insert(name, value string) bool {
	a := Attribute{Name: name, Value: value}
	pos, found := slices.BinarySearchFunc(s.items, a, compareAttributes)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, pos, a)
	return true
}

// Merge adds all declarations from other.
func (s *Attributes) Merge(other Attributes) {
	for _, a := range other.items {
		s.Insert(a.Name, a.Value)
	}
}

// Len returns number of declarations in the set.
func (s Attributes) Len() int {
	return len(s.items)
}

// Get returns first value recorded for property name.
func (s Attributes) Get(name string) (string, bool) {
	pos, _ := slices.BinarySearchFunc(s.items, name, func(a Attribute, n string) int {
		return cmp.Compare(a.Name, n)
	})
	if pos < len(s.items) && s.items[pos].Name == name {
		return s.items[pos].Value, true
	}
	return "", false
}

// All iterates over declarations in set order.
func (s Attributes) All() iter.Seq[Attribute] {
	return slices.Values(s.items)
}

// Slice returns a copy of the declarations in set order.
func (s Attributes) Slice() []Attribute {
	return slices.Clone(s.items)
}

// InlineStyle flattens the set into a value suitable for a style attribute.
func (s Attributes) InlineStyle() string {
	parts := make([]string, 0, len(s.items))
	for _, a := range s.items {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector   string
	Attributes Attributes
	SourceLine int // Line number in source for error reporting
}

// GetProperty returns the value for a property, or empty string if not found.
func (r Rule) GetProperty(name string) (string, bool) {
	return r.Attributes.Get(name)
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + declarations)
	MediaBlock *MediaBlock // A @media block containing nested rules
}

// Stylesheet represents a CSS stylesheet. Preamble is verbatim text written
// before any item (preflight).
type Stylesheet struct {
	Preamble string
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// AddRule appends a top-level rule.
func (s *Stylesheet) AddRule(rule Rule) {
	s.Items = append(s.Items, StylesheetItem{Rule: &rule})
}

// AddMediaBlock appends a @media block.
func (s *Stylesheet) AddMediaBlock(mb MediaBlock) {
	s.Items = append(s.Items, StylesheetItem{MediaBlock: &mb})
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// MediaBlocks returns all @media blocks in source order.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}

// WriteTo writes the stylesheet to w in item order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if s.Preamble != "" {
		n, err := io.WriteString(w, strings.TrimRight(s.Preamble, "\n")+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
		if len(s.Items) > 0 {
			n, err = io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}

	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w using indent for every line.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	for a := range rule.Attributes.All() {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, a.Name, a.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
