package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrFormat          = errors.New("invalid timestamp format")
	ErrIndexOutOfRange = errors.New("caption index out of range")
)

// token that is not shaped like HH:MM:SS,mmm
type FormatError struct {
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: expected HH:MM:SS,mmm", e.Text)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// ParseError reports a line that looks like a time period (it carries the
// arrow token) but does not parse as one. Line is 1-based in the source text.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed time period at line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
