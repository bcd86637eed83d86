package jsonpath

import (
	"errors"
	"fmt"
)

// ErrSyntax indicates a selector that does not match the grammar, or whose
// literals cannot be decoded.
var ErrSyntax = errors.New("jsonpath: syntax error")

// SyntaxError describes why a selector was rejected.
// Offset is the byte offset into Selector where parsing failed.
type SyntaxError struct {
	Selector string
	Offset   int
	Msg      string
	Err      error // underlying literal decoding error, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q: %s", ErrSyntax, e.Offset, e.Selector, e.Msg)
}

// Is reports ErrSyntax as a match so callers can use errors.Is.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
