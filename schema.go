package gitscribe

import (
	"encoding/json"
	"reflect"
	"slices"
	"strings"
)

// ResponseSchema describes the JSON object a backend must return.
type ResponseSchema struct {
	// Name identifies the schema to backends that require one.
	Name string
	// Description is passed to backends that surface it to the model.
	Description string
	// Schema is the JSON Schema document.
	Schema json.RawMessage
}

// SchemaBuilder builds a JSON Schema object from a Go struct.
// Use SchemaFrom[T]() to create one.
type SchemaBuilder struct {
	order    []string
	props    map[string]map[string]any
	required []string
}

// SchemaFrom creates a SchemaBuilder by reflecting on the fields of T.
// Property names come from json tags; unexported and "-" fields are skipped.
func SchemaFrom[T any]() *SchemaBuilder {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return objectBuilder(t)
}

func objectBuilder(t reflect.Type) *SchemaBuilder {
	sb := &SchemaBuilder{props: make(map[string]map[string]any)}
	if t.Kind() != reflect.Struct {
		return sb
	}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		sb.order = append(sb.order, name)
		sb.props[name] = jsonType(f.Type)
	}
	return sb
}

func jsonType(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": "array", "items": jsonType(t.Elem())}
	case reflect.Struct:
		return objectBuilder(t).toMap()
	case reflect.Map:
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": "string"}
	}
}

// Desc sets the description of a property.
func (s *SchemaBuilder) Desc(field, description string) *SchemaBuilder {
	if p, ok := s.props[field]; ok {
		p["description"] = description
	}
	return s
}

// Required marks properties as required. Unknown names are ignored.
func (s *SchemaBuilder) Required(fields ...string) *SchemaBuilder {
	for _, f := range fields {
		if _, ok := s.props[f]; ok && !slices.Contains(s.required, f) {
			s.required = append(s.required, f)
		}
	}
	return s
}

// Build renders the schema as JSON.
func (s *SchemaBuilder) Build() json.RawMessage {
	data, err := json.Marshal(s.toMap())
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}

func (s *SchemaBuilder) toMap() map[string]any {
	props := make(map[string]any, len(s.order))
	for _, name := range s.order {
		props[name] = s.props[name]
	}
	m := map[string]any{"type": "object", "properties": props}
	if len(s.required) > 0 {
		m["required"] = slices.Clone(s.required)
	}
	return m
}
