package tailwind

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"twc/utils/debug"
)

// Describe returns text tree of registered utilities with declarations they
// render to under current registries, and selectors they were bundled
// under.
func (b *Builder) Describe() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	tw := debug.NewTreeWriter()

	classes := slices.Collect(maps.Keys(b.utilities))
	sort.Sort(natural.StringSlice(classes))
	tw.Line(0, "utilities: %d", len(classes))
	for _, class := range classes {
		u := b.utilities[class]
		tw.Line(1, "%s", class)
		if u.Breakpoint != "" {
			tw.Field(2, "breakpoint", u.Breakpoint)
		}
		for _, p := range u.Pseudo {
			tw.Field(2, "pseudo", p)
		}
		tw.Field(2, "instance", u.Instance.String())
		for a := range u.Instance.Attributes(b.ctx).All() {
			tw.Line(2, "%s", a)
		}
	}

	bases := slices.Collect(maps.Keys(b.targets))
	sort.Sort(natural.StringSlice(bases))
	tw.Line(0, "selectors: %d", len(bases))
	for _, base := range bases {
		tw.Line(1, "%s", base)
		members := slices.Collect(maps.Keys(b.targets[base]))
		sort.Sort(natural.StringSlice(members))
		for _, class := range members {
			tw.Field(2, "class", class)
		}
	}
	return tw.String()
}
