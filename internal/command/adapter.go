package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Command is a named operation that can be dispatched with loosely typed arguments.
type Command interface {
	Name() string
	Declaration() Declaration
	// Execute runs the command and returns its JSON encoded response.
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Validator is implemented by request types that check themselves after decoding.
type Validator interface {
	Validate() error
}

// Executor runs a command with a typed request.
type Executor[Req, Resp any] func(context.Context, Req) (Resp, error)

// Adapter turns an Executor into a Command: arguments are decoded into Req with
// mapstructure, validated, executed, and the response is marshalled to JSON.
type Adapter[Req, Resp any] struct {
	declaration Declaration
	executor    Executor[Req, Resp]
}

// NewAdapter creates an Adapter.
func NewAdapter[Req, Resp any](
	name string,
	description string,
	params *Schema,
	executor Executor[Req, Resp],
) *Adapter[Req, Resp] {
	if executor == nil {
		panic("executor is required")
	}
	return &Adapter[Req, Resp]{
		declaration: Declaration{Name: name, Description: description, Parameters: params},
		executor:    executor,
	}
}

func (a *Adapter[Req, Resp]) Name() string { return a.declaration.Name }

func (a *Adapter[Req, Resp]) Declaration() Declaration { return a.declaration }

// Execute decodes args, validates and runs the request.
// String values are converted to the request's field types so CLI key=value pairs work.
func (a *Adapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req Req

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return "", &ArgumentsError{Command: a.Name(), Cause: err}
	}

	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", &ArgumentsError{Command: a.Name(), Cause: err}
		}
	}

	resp, err := a.executor(ctx, req)
	if err != nil {
		return "", err
	}

	bytes, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(bytes), nil
}
