package tailwind

// Registry customization. All setters are additive and are expected to be
// called before class text is processed, rendering always uses current
// registry state.

// SetMergeConflicts enables collapsing of conflicting utilities in Trace.
func (b *Builder) SetMergeConflicts(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.merge = on
}

// AddBreakpoint adds responsive variant or changes its width.
func (b *Builder) AddBreakpoint(name string, width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx.Screens.Insert(name, width)
}

// AddColor merges shades into the named palette ramp.
func (b *Builder) AddColor(name string, shades Palette) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx.Colors.Insert(name, shades)
}

// AddFontFamily adds or overrides named font stack.
func (b *Builder) AddFontFamily(name, stack string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx.Fonts.InsertFamily(name, stack)
}

// AddFontSize adds or overrides type scale step.
func (b *Builder) AddFontSize(name string, size FontSize) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx.Fonts.InsertSize(name, size)
}

// DisablePreflight removes reset stylesheet from the bundle.
func (b *Builder) DisablePreflight(disable bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx.Preflight.Disable = disable
}

// AddPreflight appends custom text to the reset stylesheet.
func (b *Builder) AddPreflight(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx.Preflight.Custom == "" {
		b.ctx.Preflight.Custom = text
		return
	}
	b.ctx.Preflight.Custom += "\n" + text
}

// Preflight returns current reset stylesheet text.
func (b *Builder) Preflight() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctx.Preflight.Text()
}
