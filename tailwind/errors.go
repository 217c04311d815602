package tailwind

import (
	"errors"
	"fmt"
)

var (
	// ErrNoUtilities is returned when class text does not contain a single
	// utility which could be registered.
	ErrNoUtilities = errors.New("no utilities in class text")
	// ErrUndefined is the cause of every LookupError.
	ErrUndefined = errors.New("undefined name")
)

// SyntaxError reports utility text or arbitrary payload which does not match
// any recognized grammar. Input is the rejected substring, Class is the whole
// utility token it came from (when known).
type SyntaxError struct {
	Class  string
	Input  string
	Reason string
	Err    error
}

func syntaxError(input, format string, args ...any) error {
	return &SyntaxError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return ""
	}
	if e.Class != "" && e.Class != e.Input {
		return fmt.Sprintf("syntax error in %q: %s: %s", e.Class, e.Reason, e.Input)
	}
	return fmt.Sprintf("syntax error: %s: %s", e.Reason, e.Input)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LookupError reports a name which is not defined in one of the registries
// (breakpoints, palette, fonts).
type LookupError struct {
	Class    string
	Registry string
	Name     string
}

func lookupError(registry, name string) error {
	return &LookupError{Registry: registry, Name: name}
}

func (e *LookupError) Error() string {
	if e == nil {
		return ""
	}
	if e.Class != "" {
		return fmt.Sprintf("lookup error in %q: unknown %s %q", e.Class, e.Registry, e.Name)
	}
	return fmt.Sprintf("lookup error: unknown %s %q", e.Registry, e.Name)
}

func (e *LookupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrUndefined
}

// withClass attaches utility token to parse errors for diagnostics.
func withClass(err error, class string) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		if se.Class == "" {
			se.Class = class
		}
		return err
	}
	var le *LookupError
	if errors.As(err, &le) {
		if le.Class == "" {
			le.Class = class
		}
		return err
	}
	return &SyntaxError{Class: class, Input: class, Reason: "unable to parse utility", Err: err}
}
