package gitglob

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ParseError. Callers can test for them with
// errors.Is after unwrapping a Parse failure.
var (
	// ErrEmptyPattern reports a line with no pattern body left after the
	// negation, anchor, and directory markers were stripped.
	ErrEmptyPattern = errors.New("pattern is empty after marker stripping")

	// ErrUnterminatedClass reports a '[' character class with no closing ']'.
	ErrUnterminatedClass = errors.New("unterminated character class")

	// ErrTrailingEscape reports a lone '\' at the end of a pattern with
	// nothing left to escape.
	ErrTrailingEscape = errors.New("trailing escape with nothing to escape")
)

// ParseError describes a pattern line that Parse rejected. Matching such a
// line in git never succeeds, so rejecting it up front keeps behavior
// identical while telling the caller which line is broken.
type ParseError struct {
	Line string // the offending line, as written
	Err  error  // one of the sentinel causes above
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
