// Package schema provides JSON Schema building and validation for tool
// parameters.
//
// # Quick Start
//
//	params := schema.Object(map[string]*schema.Property{
//	    "flight_number": schema.String("The flight number to look up (e.g., 'AA123', 'DL456')"),
//	}, "flight_number") // "flight_number" is required
//
//	compiled := schema.MustCompile(params)
//	err := compiled.Validate(map[string]any{"flight_number": "AA123"})
//
// Schemas can also be derived from Go types with [Reflect]. The toolchain
// registry compiles every advertised schema at construction and validates
// arguments before a handler runs.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a JSON Schema definition.
// It provides both the raw map representation (for the model request)
// and a compiled validator (for runtime validation).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates the given arguments against the schema.
// Returns nil if valid, or a *ValidationError describing the failure.
func (s *Schema) Validate(data map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if data == nil {
		data = map[string]any{}
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments: %s", firstLine(e.Err.Error()))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// firstLine reduces the validator's multi-line report to its first cause.
func firstLine(msg string) string {
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	if len(lines) == 1 {
		return lines[0]
	}
	return strings.TrimPrefix(strings.TrimSpace(lines[1]), "- ")
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// A nil map compiles to a nil Schema, which accepts anything.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "marshal schema")
	}

	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, errors.Wrap(err, "parse schema")
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, errors.Wrap(err, "add schema resource")
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}
