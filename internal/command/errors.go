package command

import (
	"errors"
	"fmt"
)

// UnknownCommandError is returned when dispatching a name nobody registered.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}
func (e *UnknownCommandError) InvalidInput() bool { return true }

// ArgumentsError is returned when arguments cannot be decoded or fail validation.
type ArgumentsError struct {
	Command string
	Cause   error
}

func (e *ArgumentsError) Error() string {
	return fmt.Sprintf("%s: invalid arguments: %v", e.Command, e.Cause)
}
func (e *ArgumentsError) Unwrap() error      { return e.Cause }
func (e *ArgumentsError) InvalidInput() bool { return true }

var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrMissingArgument  = errors.New("missing required argument")
)
