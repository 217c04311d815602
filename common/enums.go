// Package common holds enumerations shared by configuration, library and
// command line code. Keeping them here avoids import cycles between config
// and the packages it configures.
package common

//go:generate go tool go-enum --marshal --names

// Specification of document rewrite strategy.
// ENUM(none, inline, scoped, data-key, data-value)
type InlineMode int

// Bundled reports whether utilities discovered in this mode end up in the
// stylesheet. Inline mode writes declarations straight into elements.
func (m InlineMode) Bundled() bool {
	return m != InlineModeInline
}
