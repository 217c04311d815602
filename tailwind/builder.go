package tailwind

import (
	"maps"
	"slices"
	"strings"
	"sync"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"twc/css"
)

// Builder collects utilities discovered in class attributes and produces
// stylesheet for them. Builder is safe for concurrent use, registries should
// be configured before any class text is processed.
type Builder struct {
	mu    sync.Mutex
	log   *zap.Logger
	ctx   *Context
	merge bool

	// canonical class text -> parsed utility
	utilities map[string]*Utility
	// base selector -> classes of utilities rendered under it
	targets map[string]map[string]struct{}
}

// New creates builder with builtin registries.
func New(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		log:       log.Named("builder"),
		ctx:       NewContext(),
		utilities: make(map[string]*Utility),
		targets:   make(map[string]map[string]struct{}),
	}
}

// resolve parses every class of the text registering new utilities. Bad
// classes are reported and skipped, error is returned only when nothing
// could be resolved. Must be called with lock held.
func (b *Builder) resolve(class string) ([]*Utility, error) {
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return nil, nil
	}

	var (
		result []*Utility
		errs   error
		seen   = make(map[string]struct{}, len(fields))
	)
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}

		u, ok := b.utilities[f]
		if !ok {
			var err error
			if u, err = ParseUtility(f, b.ctx); err != nil {
				b.log.Warn("Unable to parse utility, skipping", zap.String("class", f), zap.Error(err))
				errs = multierr.Append(errs, err)
				continue
			}
			b.utilities[f] = u
		}
		result = append(result, u)
	}
	if len(result) == 0 {
		return nil, errs
	}
	return result, nil
}

func (b *Builder) target(base string, utilities []*Utility) {
	classes, ok := b.targets[base]
	if !ok {
		classes = make(map[string]struct{}, len(utilities))
		b.targets[base] = classes
	}
	for _, u := range utilities {
		classes[u.Class] = struct{}{}
	}
}

func (b *Builder) token(utilities []*Utility) string {
	classes := make([]string, 0, len(utilities))
	for _, u := range utilities {
		classes = append(classes, u.Class)
	}
	return contentToken(classes)
}

// Trace registers utilities of the class text under their own class
// selectors. Returned text is the original one, or, when conflict merging
// is on, the text with conflicting utilities collapsed to the last one.
func (b *Builder) Trace(class string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.merge {
		class = twmerge.Merge(class)
	}
	utilities, err := b.resolve(class)
	if err != nil {
		return class, err
	}
	for _, u := range utilities {
		b.target("."+css.EscapeIdent(u.Class), []*Utility{u})
	}
	return class, nil
}

// Inline renders unconditional utilities of the class text into style
// declarations. Returned class text keeps classes which were not inlined.
func (b *Builder) Inline(class string) (string, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	utilities, err := b.resolve(class)
	if err != nil {
		return class, "", err
	}

	var (
		attrs   css.Attributes
		inlined = make(map[string]struct{}, len(utilities))
	)
	for _, u := range utilities {
		if u.HasVariants() {
			b.log.Debug("Conditional utility could not be inlined", zap.String("class", u.Class))
			continue
		}
		attrs.Merge(u.Instance.Attributes(b.ctx))
		inlined[u.Class] = struct{}{}
	}
	if len(inlined) == 0 {
		return class, "", ErrNoUtilities
	}

	var rest []string
	for _, f := range strings.Fields(class) {
		if _, ok := inlined[f]; !ok {
			rest = append(rest, f)
		}
	}
	return strings.Join(rest, " "), attrs.InlineStyle(), nil
}

// Scope registers utilities under a class name derived from their content
// and returns that name.
func (b *Builder) Scope(class string) (string, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	utilities, err := b.resolve(class)
	if err != nil {
		return class, "", err
	}
	if len(utilities) == 0 {
		return class, "", ErrNoUtilities
	}
	scoped := ScopePrefix + b.token(utilities)
	b.target("."+scoped, utilities)
	return class, scoped, nil
}

// DataKey registers utilities under an attribute name selector, see
// DataKeyAttribute, and returns content derived token.
func (b *Builder) DataKey(class string) (string, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	utilities, err := b.resolve(class)
	if err != nil {
		return class, "", err
	}
	if len(utilities) == 0 {
		return class, "", ErrNoUtilities
	}
	key := b.token(utilities)
	b.target("["+DataKeyAttribute(key)+"]", utilities)
	return class, key, nil
}

// DataValue registers utilities under an attribute value selector, see
// DataValueText, and returns content derived token.
func (b *Builder) DataValue(class string) (string, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	utilities, err := b.resolve(class)
	if err != nil {
		return class, "", err
	}
	if len(utilities) == 0 {
		return class, "", ErrNoUtilities
	}
	value := b.token(utilities)
	b.target("["+DataValueAttribute+"="+css.Quote(DataValueText(value))+"]", utilities)
	return class, value, nil
}

// Utilities returns sorted canonical texts of all registered utilities.
func (b *Builder) Utilities() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Sorted(maps.Keys(b.utilities))
}
