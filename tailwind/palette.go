package tailwind

// Palette is a shade ramp of a single color: shade name ("50", "500",
// "DEFAULT") to CSS color.
type Palette map[string]string

// PaletteSystem keeps named color ramps.
type PaletteSystem struct {
	colors map[string]Palette
}

var shadeSteps = [...]string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

func ramp(values ...string) Palette {
	p := make(Palette, len(values))
	for i, v := range values {
		p[shadeSteps[i]] = v
	}
	return p
}

// BuiltinPalette returns default color registry.
func BuiltinPalette() *PaletteSystem {
	return &PaletteSystem{colors: map[string]Palette{
		"slate":  ramp("#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8", "#64748b", "#475569", "#334155", "#1e293b", "#0f172a"),
		"gray":   ramp("#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827"),
		"red":    ramp("#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d"),
		"orange": ramp("#fff7ed", "#ffedd5", "#fed7aa", "#fdba74", "#fb923c", "#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12"),
		"yellow": ramp("#fefce8", "#fef9c3", "#fef08a", "#fde047", "#facc15", "#eab308", "#ca8a04", "#a16207", "#854d0e", "#713f12"),
		"green":  ramp("#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d"),
		"teal":   ramp("#f0fdfa", "#ccfbf1", "#99f6e4", "#5eead4", "#2dd4bf", "#14b8a6", "#0d9488", "#0f766e", "#115e59", "#134e4a"),
		"blue":   ramp("#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a"),
		"indigo": ramp("#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81"),
		"purple": ramp("#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87"),
		"pink":   ramp("#fdf2f8", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d", "#9d174d", "#831843"),
	}}
}

// Insert merges shades into the named ramp, creating it when necessary.
// Existing shades with the same name are overridden.
func (s *PaletteSystem) Insert(name string, shades Palette) {
	p, ok := s.colors[name]
	if !ok {
		p = make(Palette, len(shades))
		s.colors[name] = p
	}
	for shade, color := range shades {
		p[shade] = color
	}
}

// Get returns color for the ramp name and shade.
func (s *PaletteSystem) Get(name, shade string) (string, bool) {
	p, ok := s.colors[name]
	if !ok {
		return "", false
	}
	c, ok := p[shade]
	return c, ok
}
