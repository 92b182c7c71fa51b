package workspace

import (
	"errors"
	"fmt"
)

// NotFoundError is returned for an unknown workspace id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workspace %s not found", e.ID)
}
func (e *NotFoundError) InvalidInput() bool { return true }

// InvalidPositionError is returned for a cursor outside 1-based coordinates.
type InvalidPositionError struct {
	Line   int
	Column int
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %d:%d", e.Line, e.Column)
}
func (e *InvalidPositionError) InvalidInput() bool { return true }

// -- Sentinels --

var (
	ErrNameRequired      = errors.New("workspace name is required")
	ErrRootRequired      = errors.New("workspace root is required")
	ErrPathRequired      = errors.New("file path is required")
	ErrLastWorkspace     = errors.New("cannot close the last workspace")
	ErrNoActiveWorkspace = errors.New("no active workspace")
	ErrNoCurrentFile     = errors.New("no current file")
)
