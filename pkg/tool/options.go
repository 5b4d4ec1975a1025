package tool

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Options is the merged, validated option set handed to a running tool.
// Values are guaranteed to match the declared field types.
type Options map[string]interface{}

// String returns a string option.
func (o Options) String(name string) string {
	v, _ := o[name].(string)
	return v
}

// Bool returns a boolean option.
func (o Options) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

// Float returns a numeric option.
func (o Options) Float(name string) float64 {
	switch v := o[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Int returns an integer option. JSON decoding yields float64, so both
// representations are accepted.
func (o Options) Int(name string) int {
	return int(o.Float(name))
}

// validateDefinition checks a tool definition before registration.
func validateDefinition(t Tool) error {
	if t.ID == "" {
		return fmt.Errorf("tool id cannot be empty")
	}
	if t.Title == "" {
		return fmt.Errorf("tool title cannot be empty for %s", t.ID)
	}
	if t.Description == "" {
		return fmt.Errorf("tool description cannot be empty for %s", t.ID)
	}
	if !IsValidCategory(string(t.Category)) {
		return fmt.Errorf("invalid category %q for %s", t.Category, t.ID)
	}
	if t.Run == nil {
		return fmt.Errorf("tool run function cannot be nil for %s", t.ID)
	}

	validTypes := map[OptionType]bool{
		OptionString: true, OptionNumber: true,
		OptionInteger: true, OptionBoolean: true,
	}
	for _, field := range t.Options {
		if field.Name == "" {
			return fmt.Errorf("option name cannot be empty for %s", t.ID)
		}
		if !validTypes[field.Type] {
			return fmt.Errorf("invalid option type %q for %s.%s", field.Type, t.ID, field.Name)
		}
		if field.Default == nil {
			return fmt.Errorf("option %s.%s has no default", t.ID, field.Name)
		}
	}
	return nil
}

// generateSchema builds a JSON Schema for a tool's option fields.
func generateSchema(t Tool) (*gojsonschema.Schema, error) {
	properties := make(map[string]interface{}, len(t.Options))
	required := make([]string, 0, len(t.Options))

	for _, field := range t.Options {
		fieldSchema := map[string]interface{}{
			"type":        string(field.Type),
			"description": field.Description,
			"default":     field.Default,
		}
		if len(field.Enum) > 0 {
			enum := make([]interface{}, len(field.Enum))
			for i, v := range field.Enum {
				enum[i] = v
			}
			fieldSchema["enum"] = enum
		}
		if field.Min != nil {
			fieldSchema["minimum"] = *field.Min
		}
		if field.Max != nil {
			fieldSchema["maximum"] = *field.Max
		}
		if field.MaxLength != nil {
			fieldSchema["maxLength"] = *field.MaxLength
		}
		properties[field.Name] = fieldSchema
		required = append(required, field.Name)
	}

	schemaMap := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		schemaMap["required"] = required
	}

	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
}

// mergeAndValidate merges caller-supplied partial options over the
// tool's declared defaults and validates the merged object against the
// generated schema. Returns InvalidOptions with field-level errors on
// failure.
func mergeAndValidate(t *Tool, schema *gojsonschema.Schema, supplied map[string]interface{}) (Options, error) {
	merged := t.Defaults()
	for name, value := range supplied {
		merged[name] = value
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(merged))
	if err != nil {
		return nil, fmt.Errorf("options validation failed: %w", err)
	}
	if !result.Valid() {
		fields := make([]FieldError, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			fields = append(fields, FieldError{
				Field:   verr.Field(),
				Message: verr.Description(),
			})
		}
		return nil, ErrInvalidOptions(fields)
	}

	return Options(merged), nil
}
