//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// CleanFileName makes name produced from document title usable as a single
// path element.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		switch {
		case sym == os.PathSeparator, sym == os.PathListSeparator, unicode.IsControl(sym):
			return -1
		}
		return sym
	}, in)
	// no hidden files
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if out == "" {
		return unnamed
	}
	return out
}

// EnableColorOutput reports whether stream is a terminal which understands
// color sequences.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
