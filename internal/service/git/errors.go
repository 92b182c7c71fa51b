package git

import (
	"errors"
	"fmt"
)

// GitignoreReadError is returned when .gitignore exists but cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }
func (e *GitignoreReadError) IOError() bool { return true }

// StatusError is returned when the worktree status cannot be computed.
type StatusError struct {
	Root  string
	Cause error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to read git status for %s: %v", e.Root, e.Cause)
}
func (e *StatusError) Unwrap() error { return e.Cause }

var (
	ErrNotRepository = errors.New("not a git repository")
)
