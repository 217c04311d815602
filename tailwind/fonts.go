package tailwind

// FontSize is a named step of the type scale: font size in rem and the line
// height which goes with it.
type FontSize struct {
	Size   float64
	Height string
}

// FontSystem keeps font family stacks and type scale.
type FontSystem struct {
	families map[string]string
	sizes    map[string]FontSize
}

// BuiltinFonts returns default font registry.
func BuiltinFonts() *FontSystem {
	return &FontSystem{
		families: map[string]string{
			"sans":  `ui-sans-serif, system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, "Noto Sans", sans-serif`,
			"serif": `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`,
			"mono":  `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace`,
		},
		sizes: map[string]FontSize{
			"xs":   {Size: 0.75, Height: "1rem"},
			"sm":   {Size: 0.875, Height: "1.25rem"},
			"base": {Size: 1, Height: "1.5rem"},
			"lg":   {Size: 1.125, Height: "1.75rem"},
			"xl":   {Size: 1.25, Height: "1.75rem"},
			"2xl":  {Size: 1.5, Height: "2rem"},
			"3xl":  {Size: 1.875, Height: "2.25rem"},
			"4xl":  {Size: 2.25, Height: "2.5rem"},
			"5xl":  {Size: 3, Height: "1"},
			"6xl":  {Size: 3.75, Height: "1"},
			"7xl":  {Size: 4.5, Height: "1"},
			"8xl":  {Size: 6, Height: "1"},
			"9xl":  {Size: 8, Height: "1"},
		},
	}
}

// InsertFamily adds or overrides font family stack.
func (s *FontSystem) InsertFamily(name, stack string) {
	s.families[name] = stack
}

// InsertSize adds or overrides type scale step.
func (s *FontSystem) InsertSize(name string, size FontSize) {
	s.sizes[name] = size
}

// Family returns font stack for the name.
func (s *FontSystem) Family(name string) (string, bool) {
	f, ok := s.families[name]
	return f, ok
}

// Size returns type scale step for the name.
func (s *FontSystem) Size(name string) (FontSize, bool) {
	f, ok := s.sizes[name]
	return f, ok
}
