package tailwind

import (
	_ "embed"
	"strings"
)

//go:embed preflight.css
var builtinPreflight string

// PreflightSystem is a reset stylesheet put in front of every bundle.
type PreflightSystem struct {
	// Disable removes preflight (builtin and custom) from the bundle.
	Disable bool
	// Custom is appended after builtin reset.
	Custom string
}

// Text returns complete preflight CSS or empty string when disabled.
func (p *PreflightSystem) Text() string {
	if p.Disable {
		return ""
	}
	if strings.TrimSpace(p.Custom) == "" {
		return builtinPreflight
	}
	return strings.TrimRight(builtinPreflight, "\n") + "\n\n" + strings.TrimSpace(p.Custom) + "\n"
}
