package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// Reflect derives an object schema from the struct type of v using json and
// jsonschema struct tags:
//
//	type routeArgs struct {
//	    From string `json:"departure_city" jsonschema:"description=The departure city"`
//	    To   string `json:"arrival_city" jsonschema:"description=The arrival city"`
//	}
//	params, err := schema.Reflect(routeArgs{})
//
// Fields without omitempty are required. Definitions are inlined and the
// $schema/$id keywords are dropped, since chat-completion providers expect a
// bare parameters object.
func Reflect(v any) (map[string]any, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		Anonymous:                 true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(v)
	if s.Type == "" && s.Ref == "" {
		s.Type = "object"
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal reflected schema")
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode reflected schema")
	}
	delete(raw, "$schema")
	delete(raw, "$id")
	if _, ok := raw["properties"]; !ok {
		raw["properties"] = map[string]any{}
	}
	return raw, nil
}

// MustReflect is like Reflect but panics on error.
func MustReflect(v any) map[string]any {
	raw, err := Reflect(v)
	if err != nil {
		panic(err)
	}
	return raw
}
