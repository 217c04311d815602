package tailwind

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"twc/css"
)

type ruleGroup map[string]*css.Attributes

func (g ruleGroup) add(selector string, attrs css.Attributes) {
	set, ok := g[selector]
	if !ok {
		set = &css.Attributes{}
		g[selector] = set
	}
	set.Merge(attrs)
}

func (g ruleGroup) rules() []css.Rule {
	selectors := slices.Collect(maps.Keys(g))
	sort.Sort(natural.StringSlice(selectors))

	rules := make([]css.Rule, 0, len(selectors))
	for _, sel := range selectors {
		rules = append(rules, css.Rule{Selector: sel, Attributes: *g[sel]})
	}
	return rules
}

// Stylesheet renders preflight and every registered utility against current
// registries. Utilities sharing a selector are merged into one rule,
// responsive utilities go into @media blocks ordered by width.
func (b *Builder) Stylesheet() *css.Stylesheet {
	b.mu.Lock()
	defer b.mu.Unlock()

	plain := make(ruleGroup)
	media := make(map[string]ruleGroup)

	for base, classes := range b.targets {
		for class := range classes {
			u := b.utilities[class]
			attrs := u.Instance.Attributes(b.ctx)
			if attrs.Len() == 0 {
				b.log.Debug("Utility renders nothing", zap.String("class", class))
				continue
			}
			group := plain
			if u.Breakpoint != "" {
				if group = media[u.Breakpoint]; group == nil {
					group = make(ruleGroup)
					media[u.Breakpoint] = group
				}
			}
			group.add(u.Selector(base), attrs)
		}
	}

	sheet := &css.Stylesheet{Preamble: b.ctx.Preflight.Text()}
	for _, rule := range plain.rules() {
		sheet.AddRule(rule)
	}
	for _, name := range b.ctx.Screens.Names() {
		group, ok := media[name]
		if !ok {
			continue
		}
		width, _ := b.ctx.Screens.Get(name)
		sheet.AddMediaBlock(css.MediaBlock{
			Query: fmt.Sprintf("(min-width: %dpx)", width),
			Rules: group.rules(),
		})
	}
	return sheet
}

// WriteBundle writes complete stylesheet to w.
func (b *Builder) WriteBundle(w io.Writer) error {
	if _, err := b.Stylesheet().WriteTo(w); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return nil
}

// Bundle returns complete stylesheet text. Output depends only on the set of
// registered utilities and registries, not on the order of discovery.
func (b *Builder) Bundle() (string, error) {
	var sb strings.Builder
	if err := b.WriteBundle(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
