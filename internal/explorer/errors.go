package explorer

import (
	"errors"
	"fmt"
)

// FileTooLargeError is returned when a file exceeds the configured read limit.
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s too large: %d bytes (limit %d)", e.Path, e.Size, e.Limit)
}

func (e *FileTooLargeError) InvalidInput() bool { return true }

// ReadError wraps a failure reading a file.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }
func (e *ReadError) IOError() bool { return true }

// WriteError wraps a failure writing a file.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }
func (e *WriteError) IOError() bool { return true }

// ListError wraps a failure listing a directory.
type ListError struct {
	Path  string
	Cause error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Path, e.Cause)
}
func (e *ListError) Unwrap() error { return e.Cause }
func (e *ListError) IOError() bool { return true }

// -- Sentinels --

var (
	ErrBinaryFile    = errors.New("file is binary")
	ErrIsDirectory   = errors.New("path is a directory")
	ErrNotADirectory = errors.New("path is not a directory")
	ErrNameRequired  = errors.New("name is required")

	ErrSymlinkOutsideRoot = errors.New("symlink target is outside workspace root")
)
