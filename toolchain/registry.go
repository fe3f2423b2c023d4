package toolchain

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rickchristie/flightdesk"
	"github.com/rickchristie/flightdesk/schema"
)

var (
	// ErrToolSetMismatch is returned when the advertised descriptors and the
	// dispatch table do not name the same set of tools.
	ErrToolSetMismatch = errors.New("tool descriptors and handlers do not match")

	// ErrDuplicateTool is returned when two descriptors share a name.
	ErrDuplicateTool = errors.New("duplicate tool")

	// ErrInvalidToolSchema is returned when a descriptor's parameter schema
	// does not compile.
	ErrInvalidToolSchema = errors.New("invalid tool schema")
)

// Handler executes one tool with validated arguments and returns the text
// given back to the model.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Registry is a fixed, name-keyed set of tools. It owns both sides of tool use:
// the descriptors advertised to the model and the handlers dispatched when the
// model asks for a call.
//
// A Registry is immutable after construction and safe for concurrent use if
// its handlers are.
type Registry struct {
	descriptors []flightdesk.ToolDescriptor
	handlers    map[string]Handler
	schemas     map[string]*schema.Schema
}

// New builds a registry from descriptors and a dispatch table. It fails when
// a descriptor name is duplicated, when a parameter schema does not compile,
// or when the descriptor names and the handler keys are not the same set.
func New(descriptors []flightdesk.ToolDescriptor, handlers map[string]Handler) (*Registry, error) {
	r := &Registry{
		descriptors: make([]flightdesk.ToolDescriptor, 0, len(descriptors)),
		handlers:    make(map[string]Handler, len(handlers)),
		schemas:     make(map[string]*schema.Schema, len(descriptors)),
	}

	declared := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		if declared[d.Name] {
			return nil, errors.Wrapf(ErrDuplicateTool, "%s", d.Name)
		}
		declared[d.Name] = true

		compiled, err := schema.Compile(d.Parameters)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidToolSchema, "%s: %v", d.Name, err)
		}
		r.schemas[d.Name] = compiled
		r.descriptors = append(r.descriptors, d)
	}

	var missing, undeclared []string
	for name := range declared {
		if handlers[name] == nil {
			missing = append(missing, name)
		}
	}
	for name, h := range handlers {
		if !declared[name] {
			undeclared = append(undeclared, name)
			continue
		}
		r.handlers[name] = h
	}
	if len(missing) > 0 || len(undeclared) > 0 {
		sort.Strings(missing)
		sort.Strings(undeclared)
		return nil, errors.Wrapf(
			ErrToolSetMismatch,
			"without handler: [%s], without descriptor: [%s]",
			strings.Join(missing, ", "),
			strings.Join(undeclared, ", "),
		)
	}

	return r, nil
}

// FromTools builds a registry whose descriptors and handlers both come from
// the given tools, in order.
func FromTools(tools ...flightdesk.Tool) (*Registry, error) {
	descriptors := make([]flightdesk.ToolDescriptor, 0, len(tools))
	handlers := make(map[string]Handler, len(tools))
	for _, t := range tools {
		if t == nil {
			return nil, errors.New("nil tool")
		}
		descriptors = append(descriptors, flightdesk.Describe(t))
		handlers[t.Name()] = t.Call
	}
	return New(descriptors, handlers)
}

// MustFromTools is like FromTools but panics on error.
func MustFromTools(tools ...flightdesk.Tool) *Registry {
	r, err := FromTools(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Descriptors returns the advertised tool set in registration order.
func (r *Registry) Descriptors() []flightdesk.ToolDescriptor {
	out := make([]flightdesk.ToolDescriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		names[i] = d.Name
	}
	return names
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Dispatch runs the named tool and returns its text result. It never fails:
//   - an unregistered name yields "Unknown function: <name>"
//   - invalid arguments, a handler error or a handler panic yield
//     "Error executing <name>: <detail>"
//
// Dispatch does not log. Callers report the result, and IsFailure tells the
// two failure texts apart from a tool's own output.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) string {
	handler, ok := r.handlers[name]
	if !ok {
		return UnknownFunctionText(name)
	}

	if err := r.schemas[name].Validate(args); err != nil {
		return ExecutionErrorText(name, err)
	}

	out, err := safeCall(ctx, handler, args)
	if err != nil {
		return ExecutionErrorText(name, err)
	}
	return out
}

// DispatchCall decodes the call's raw arguments and dispatches it. Arguments
// that are not a JSON object are reported like any other execution error.
func (r *Registry) DispatchCall(ctx context.Context, call flightdesk.ToolCallRequest) string {
	if !r.Has(call.Name) {
		return UnknownFunctionText(call.Name)
	}
	args, err := call.Args()
	if err != nil {
		return ExecutionErrorText(call.Name, errors.Cause(err))
	}
	return r.Dispatch(ctx, call.Name, args)
}

func safeCall(ctx context.Context, h Handler, args map[string]any) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("panic: %v", p)
		}
	}()
	return h(ctx, args)
}

const (
	unknownFunctionPrefix = "Unknown function: "
	executionErrorPrefix  = "Error executing "
)

// UnknownFunctionText is the result returned for an unregistered tool name.
func UnknownFunctionText(name string) string {
	return unknownFunctionPrefix + name
}

// ExecutionErrorText is the result returned when a tool fails.
func ExecutionErrorText(name string, err error) string {
	return fmt.Sprintf("%s%s: %v", executionErrorPrefix, name, err)
}

// IsFailure reports whether a dispatch result is one of the failure texts
// rather than the tool's own output.
func IsFailure(result string) bool {
	return strings.HasPrefix(result, unknownFunctionPrefix) ||
		strings.HasPrefix(result, executionErrorPrefix)
}
