// Package schema compiles the flat properties/required/type subset of JSON
// Schema into a typed field model used to validate request and example
// payloads. Compilation is pure and allocation-only; a Model may be used
// concurrently.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// FieldKind identifies the JSON primitive a field accepts
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindInteger FieldKind = "integer"
	KindNumber  FieldKind = "number"
	KindBoolean FieldKind = "boolean"
	KindArray   FieldKind = "array"
	KindObject  FieldKind = "object"
)

// kindTable maps JSON Schema type discriminators to field kinds. Anything
// outside this table is an unsupported type and fails compilation.
var kindTable = map[string]FieldKind{
	"string":  KindString,
	"integer": KindInteger,
	"number":  KindNumber,
	"boolean": KindBoolean,
	"array":   KindArray,
	"object":  KindObject,
}

// Field is one compiled property declaration
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Model is the compiled form of a flat JSON Schema. Fields preserve the
// iteration order they were compiled in; byName is the lookup index.
type Model struct {
	Fields []Field
	byName map[string]*Field
}

// UnsupportedTypeError reports a property whose declared type is not in the
// supported table. It aborts compilation for the whole schema.
type UnsupportedTypeError struct {
	Property string
	Type     string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("property %q has no type", e.Property)
	}
	return fmt.Sprintf("property %q has unsupported type %q", e.Property, e.Type)
}

// ValidationError reports a payload that does not match the compiled model
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Compile converts a flat JSON Schema into a Model. Only the top-level
// properties map and required list are read; array and object properties are
// tagged as opaque containers, never recursed into. Names listed in required
// but absent from properties are ignored.
func Compile(raw map[string]interface{}) (*Model, error) {
	properties, _ := raw["properties"].(map[string]interface{})

	requiredSet := make(map[string]bool)
	if required, ok := raw["required"].([]interface{}); ok {
		for _, name := range required {
			if s, ok := name.(string); ok {
				requiredSet[s] = true
			}
		}
	}

	model := &Model{
		Fields: make([]Field, 0, len(properties)),
		byName: make(map[string]*Field, len(properties)),
	}

	for name, rawProp := range properties {
		prop, _ := rawProp.(map[string]interface{})
		typeName, _ := prop["type"].(string)
		kind, ok := kindTable[typeName]
		if !ok {
			return nil, &UnsupportedTypeError{Property: name, Type: typeName}
		}
		model.Fields = append(model.Fields, Field{
			Name:     name,
			Kind:     kind,
			Required: requiredSet[name],
		})
	}
	for i := range model.Fields {
		model.byName[model.Fields[i].Name] = &model.Fields[i]
	}

	return model, nil
}

// Validate checks a decoded JSON object against the model: every required
// field must be present, and every present declared field must match its
// kind's structural shape. Extra undeclared fields are allowed; optional
// absent fields default to null.
func (m *Model) Validate(payload map[string]interface{}) error {
	for _, f := range m.Fields {
		value, present := payload[f.Name]
		if !present {
			if f.Required {
				return &ValidationError{Field: f.Name, Message: "required field is missing"}
			}
			continue
		}
		if value == nil {
			if f.Required {
				return &ValidationError{Field: f.Name, Message: "required field is null"}
			}
			continue
		}
		if !matchesKind(value, f.Kind) {
			return &ValidationError{
				Field:   f.Name,
				Message: fmt.Sprintf("expected %s, got %T", f.Kind, value),
			}
		}
	}
	return nil
}

// matchesKind checks a decoded JSON value against a field kind. Numbers
// decoded by encoding/json arrive as float64, so integer accepts any float64
// without a fractional part, plus json.Number values that parse as int64.
func matchesKind(value interface{}, kind FieldKind) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindInteger:
		switch v := value.(type) {
		case float64:
			return v == math.Trunc(v)
		case json.Number:
			_, err := v.Int64()
			return err == nil
		case int, int64:
			return true
		}
		return false
	case KindNumber:
		switch value.(type) {
		case float64, json.Number, int, int64:
			return true
		}
		return false
	case KindArray:
		_, ok := value.([]interface{})
		return ok
	case KindObject:
		_, ok := value.(map[string]interface{})
		return ok
	}
	return false
}

// Lookup returns the declaration for a field name, if declared
func (m *Model) Lookup(name string) (Field, bool) {
	f, ok := m.byName[name]
	if !ok {
		return Field{}, false
	}
	return *f, true
}

// JSONSchema re-emits the model as a flat JSON Schema object suitable for a
// provider's structured-output response format. additionalProperties is
// closed so the provider cannot invent fields outside the model.
func (m *Model) JSONSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(m.Fields))
	required := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		properties[f.Name] = map[string]interface{}{"type": string(f.Kind)}
		if f.Required {
			required = append(required, f.Name)
		}
	}
	out := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}
