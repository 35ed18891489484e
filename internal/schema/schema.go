package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Schema represents the subset of JSON Schema used to describe tool parameters
type Schema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties *bool               `json:"additionalProperties,omitempty"`
}

// Property describes a single named parameter
type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Default     any                 `json:"default,omitempty"`
	Enum        []any               `json:"enum,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

// Object builds an object schema with the given properties and required fields
func Object(properties map[string]Property, required ...string) Schema {
	return Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Validate checks input against the schema: required fields must be present
// and known fields must carry a value of the declared type.
func (s Schema) Validate(input map[string]any) error {
	for _, field := range s.Required {
		if _, ok := input[field]; !ok {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	// Sorted so the reported field is stable across runs
	fields := make([]string, 0, len(input))
	for name := range input {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	for _, name := range fields {
		property, ok := s.Properties[name]
		if !ok {
			if s.AdditionalProperties != nil && !*s.AdditionalProperties {
				return fmt.Errorf("unexpected field: %s", name)
			}
			continue
		}
		if err := property.check(input[name]); err != nil {
			return fmt.Errorf("field %s %w", name, err)
		}
	}

	return nil
}

// WithDefaults returns a copy of input where every absent property that
// declares a default carries that default.
func (s Schema) WithDefaults(input map[string]any) map[string]any {
	out := make(map[string]any, len(input)+len(s.Properties))
	for k, v := range input {
		out[k] = v
	}
	for name, property := range s.Properties {
		if _, ok := out[name]; !ok && property.Default != nil {
			out[name] = property.Default
		}
	}
	return out
}

func (p Property) check(value any) error {
	switch p.Type {
	case "":
		return nil
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("must be a string")
		}
	case "number":
		if _, ok := number(value); !ok {
			return fmt.Errorf("must be a number")
		}
	case "integer":
		if s, ok := value.(string); ok {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				return fmt.Errorf("must be an integer")
			}
			break
		}
		f, ok := number(value)
		if !ok || f != math.Trunc(f) {
			return fmt.Errorf("must be an integer")
		}
	case "boolean":
		switch v := value.(type) {
		case bool:
		case string:
			if _, err := strconv.ParseBool(v); err != nil {
				return fmt.Errorf("must be a boolean")
			}
		default:
			return fmt.Errorf("must be a boolean")
		}
	case "array":
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("must be an array")
		}
		if p.Items != nil {
			for i, item := range items {
				if err := p.Items.check(item); err != nil {
					return fmt.Errorf("item %d %w", i, err)
				}
			}
		}
	case "object":
		obj, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("must be an object")
		}
		if len(p.Properties) > 0 {
			nested := Schema{Type: "object", Properties: p.Properties, Required: p.Required}
			if err := nested.Validate(obj); err != nil {
				return fmt.Errorf("is invalid: %w", err)
			}
		}
	}

	if len(p.Enum) > 0 {
		for _, allowed := range p.Enum {
			if allowed == value {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", p.Enum)
	}
	return nil
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		// models often quote numbers; the tool decoder converts them back
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
