package flightdesk

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// ToolDescriptor is the advertised description of a tool, forwarded verbatim
// to the model on every tool-enabled request.
type ToolDescriptor struct {
	// Name is unique within a registry.
	Name string `json:"name" yaml:"name"`

	// Description tells the model when to use the tool.
	Description string `json:"description" yaml:"description"`

	// Parameters is a JSON Schema object describing the arguments.
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
}

// Tool is a locally executed function the model can request by name.
//
// Tools focus on the lookup itself and return text for the model. Argument
// validation against ParameterSchema and error-to-text conversion are handled
// by the toolchain registry.
type Tool interface {
	// Name returns the tool's identifier used in tool calls.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// ParameterSchema returns the JSON Schema for the tool's parameters.
	ParameterSchema() map[string]any

	// Call executes the tool with already validated arguments.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// Describe returns the descriptor advertised for t.
func Describe(t Tool) ToolDescriptor {
	return ToolDescriptor{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.ParameterSchema(),
	}
}

// ToolFunc is a convenience type for creating tools from functions with typed
// input.
type ToolFunc[I any] struct {
	name        string
	description string
	schema      map[string]any
	fn          func(ctx context.Context, input I) (string, error)
}

// NewToolFunc creates a new ToolFunc. Arguments are decoded into I through their
// JSON representation, so I should carry json tags matching the schema.
func NewToolFunc[I any](
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, input I) (string, error),
) *ToolFunc[I] {
	return &ToolFunc[I]{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc[I]) Name() string {
	return t.name
}

// Description returns a human-readable description for the model.
func (t *ToolFunc[I]) Description() string {
	return t.description
}

// ParameterSchema returns the JSON Schema for the tool's parameters.
func (t *ToolFunc[I]) ParameterSchema() map[string]any {
	return t.schema
}

// Call decodes args into I and runs the function.
func (t *ToolFunc[I]) Call(ctx context.Context, args map[string]any) (string, error) {
	var input I
	if len(args) > 0 {
		data, err := json.Marshal(args)
		if err != nil {
			return "", errors.Wrap(err, "encode arguments")
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return "", errors.Wrap(err, "decode arguments")
		}
	}
	return t.fn(ctx, input)
}
