package path

import (
	"errors"
	"fmt"
)

// RootError is returned when a workspace root cannot be used.
type RootError struct {
	Root  string
	Cause error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *RootError) Unwrap() error { return e.Cause }

var (
	ErrOutsideRoot   = errors.New("path is outside workspace root")
	ErrRootNotSet    = errors.New("workspace root not set")
	ErrNotADirectory = errors.New("not a directory")
)
