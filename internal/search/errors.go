package search

import (
	"errors"
	"fmt"
)

// PatternError is returned when the query cannot be compiled to a pattern.
type PatternError struct {
	Pattern string
	Cause   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Pattern, e.Cause)
}
func (e *PatternError) Unwrap() error      { return e.Cause }
func (e *PatternError) InvalidInput() bool { return true }

// GlobError is returned for a malformed include or exclude pattern.
type GlobError struct {
	Glob  string
	Cause error
}

func (e *GlobError) Error() string {
	return fmt.Sprintf("invalid file pattern %q: %v", e.Glob, e.Cause)
}
func (e *GlobError) Unwrap() error      { return e.Cause }
func (e *GlobError) InvalidInput() bool { return true }

var (
	ErrBlankQuery          = errors.New("search text is blank")
	ErrReplacementRequired = errors.New("replacement text is required")
	ErrNoResults           = errors.New("no results to replace")
	ErrNotReplaceMode      = errors.New("replace mode is off")
	ErrDirectoryChanged    = errors.New("current directory changed since the search")
	ErrNoCurrentMatch      = errors.New("no current match")
)
