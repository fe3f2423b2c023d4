package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	type input struct {
		raw map[string]any
	}

	type expected struct {
		isNil  bool
		hasErr bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "nil schema returns nil",
			input:    input{raw: nil},
			expected: expected{isNil: true},
		},
		{
			name: "valid schema compiles",
			input: input{raw: Object(map[string]*Property{
				"flight_number": String("The flight number"),
			}, "flight_number")},
			expected: expected{},
		},
		{
			name:     "no params schema compiles",
			input:    input{raw: NoParams()},
			expected: expected{},
		},
		{
			name: "invalid type keyword",
			input: input{raw: map[string]any{
				"type": "flight",
			}},
			expected: expected{isNil: true, hasErr: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.input.raw)

			if tt.expected.hasErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.expected.isNil {
				assert.Nil(t, s)
			} else {
				require.NotNil(t, s)
				assert.Equal(t, tt.input.raw, s.Raw())
			}
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	route := Object(map[string]*Property{
		"departure_city": String("The departure city or airport code"),
		"arrival_city":   String("The arrival city or airport code"),
	}, "departure_city", "arrival_city")

	type input struct {
		schema map[string]any
		data   map[string]any
	}

	type expected struct {
		hasErr  bool
		message string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "all required present",
			input: input{schema: route, data: map[string]any{
				"departure_city": "New York",
				"arrival_city":   "Los Angeles",
			}},
		},
		{
			name: "empty strings are still strings",
			input: input{schema: route, data: map[string]any{
				"departure_city": "",
				"arrival_city":   "",
			}},
		},
		{
			name: "missing required",
			input: input{schema: route, data: map[string]any{
				"departure_city": "New York",
			}},
			expected: expected{hasErr: true, message: "arrival_city"},
		},
		{
			name: "wrong type",
			input: input{schema: route, data: map[string]any{
				"departure_city": 12,
				"arrival_city":   "Miami",
			}},
			expected: expected{hasErr: true, message: "invalid arguments"},
		},
		{
			name:  "nil data against no params",
			input: input{schema: NoParams(), data: nil},
		},
		{
			name: "enum violation",
			input: input{
				schema: Object(map[string]*Property{
					"rating": String("Rating").Enum("poor", "fair", "good", "excellent"),
				}, "rating"),
				data: map[string]any{"rating": "superb"},
			},
			expected: expected{hasErr: true, message: "invalid arguments"},
		},
		{
			name: "pattern",
			input: input{
				schema: Object(map[string]*Property{
					"flight_number": String("Flight").Pattern(`^[A-Za-z]{2}[0-9]{1,4}$`),
				}),
				data: map[string]any{"flight_number": "AA123"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustCompile(tt.input.schema)
			err := s.Validate(tt.input.data)

			if !tt.expected.hasErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.expected.message)
		})
	}
}

func TestSchema_NilAcceptsAnything(t *testing.T) {
	var s *Schema

	assert.NoError(t, s.Validate(map[string]any{"x": 1}))
	assert.Nil(t, s.Raw())
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": 42})
	})
}

func TestBuilders(t *testing.T) {
	obj := Object(map[string]*Property{
		"code":  String("Code").MinLength(2).MaxLength(6).Default("AA1"),
		"count": Integer("Count"),
		"ok":    Boolean("Flag"),
		"ids":   Array("IDs", map[string]any{"type": "string"}),
	}, "code")

	props := obj["properties"].(map[string]any)
	assert.Equal(t, map[string]any{
		"type":        "string",
		"description": "Code",
		"minLength":   2,
		"maxLength":   6,
		"default":     "AA1",
	}, props["code"])
	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["ok"].(map[string]any)["type"])
	assert.Equal(t, map[string]any{"type": "string"}, props["ids"].(map[string]any)["items"])
	assert.Equal(t, []string{"code"}, obj["required"])

	_, hasRequired := Object(nil)["required"]
	assert.False(t, hasRequired)
}

type reflectArgs struct {
	From  string `json:"departure_city" jsonschema:"description=The departure city or airport code"`
	To    string `json:"arrival_city" jsonschema:"description=The arrival city or airport code"`
	Limit int    `json:"limit,omitempty"`
}

func TestReflect(t *testing.T) {
	raw, err := Reflect(reflectArgs{})
	require.NoError(t, err)

	assert.Equal(t, "object", raw["type"])
	assert.NotContains(t, raw, "$schema")
	assert.NotContains(t, raw, "$id")

	props := raw["properties"].(map[string]any)
	require.Contains(t, props, "departure_city")
	assert.Equal(t, "The departure city or airport code",
		props["departure_city"].(map[string]any)["description"])
	assert.ElementsMatch(t, []any{"departure_city", "arrival_city"}, raw["required"])

	s, err := Compile(raw)
	require.NoError(t, err)
	assert.NoError(t, s.Validate(map[string]any{"departure_city": "a", "arrival_city": "b"}))
	assert.Error(t, s.Validate(map[string]any{"departure_city": "a"}))
}

func TestReflect_EmptyStruct(t *testing.T) {
	raw := MustReflect(struct{}{})

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, map[string]any{}, raw["properties"])
}
