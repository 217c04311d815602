package markup

import (
	"errors"
	"fmt"
)

var (
	ErrNoTag   = errors.New("element has no tag")
	ErrNotText = errors.New("class attribute is not valid text")
)

// StructuralError reports element which could not be rewritten because its
// shape is unexpected: no tag name or class text which is not valid UTF-8.
type StructuralError struct {
	Tag string
	Err error
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ""
	}
	if e.Tag == "" {
		return fmt.Sprintf("structural error: %v", e.Err)
	}
	return fmt.Sprintf("structural error in <%s>: %v", e.Tag, e.Err)
}

func (e *StructuralError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
