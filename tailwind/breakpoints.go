package tailwind

import (
	"cmp"
	"maps"
	"slices"
)

// BreakPointSystem maps responsive variant names to minimal viewport width in
// pixels.
type BreakPointSystem struct {
	screens map[string]int
}

// BuiltinBreakPoints returns default breakpoint registry.
func BuiltinBreakPoints() *BreakPointSystem {
	return &BreakPointSystem{screens: map[string]int{
		"sm":  640,
		"md":  768,
		"lg":  1024,
		"xl":  1280,
		"2xl": 1536,
	}}
}

// Insert adds new breakpoint or overrides width of existing one.
func (s *BreakPointSystem) Insert(name string, width int) {
	s.screens[name] = width
}

// Get returns width for the breakpoint.
func (s *BreakPointSystem) Get(name string) (int, bool) {
	w, ok := s.screens[name]
	return w, ok
}

// Names returns breakpoint names ordered by width (then name).
func (s *BreakPointSystem) Names() []string {
	return slices.SortedFunc(maps.Keys(s.screens), func(a, b string) int {
		if c := cmp.Compare(s.screens[a], s.screens[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
