package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Constraint names the rule an argument violated.
type Constraint string

const (
	ConstraintRequired Constraint = "required"
	ConstraintType     Constraint = "type"
	ConstraintLength   Constraint = "length"
	ConstraintEnum     Constraint = "enum"
	ConstraintSchema   Constraint = "schema"
)

// Error reports the first argument that failed validation.
type Error struct {
	Field      string
	Constraint Constraint
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Args holds validated string arguments with defaults applied.
type Args map[string]string

// String returns the argument value, or "" when it was not supplied and has
// no default.
func (a Args) String(name string) string {
	return a[name]
}

// Validate checks raw call arguments against the schema. It returns the typed
// arguments, or an *Error naming the offending field and constraint.
func (s *Schema) Validate(raw map[string]any) (Args, error) {
	compiled, err := s.Compile()
	if err != nil {
		return nil, err
	}

	instance, err := normalize(raw)
	if err != nil {
		return nil, &Error{
			Field:      "arguments",
			Constraint: ConstraintSchema,
			Message:    fmt.Sprintf("arguments are not valid JSON: %v", err),
		}
	}

	if err := compiled.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		return nil, s.describe(ve, instance)
	}

	args := make(Args, len(s.Fields))
	for _, field := range s.Fields {
		if value, ok := instance[field.Name].(string); ok {
			args[field.Name] = value
			continue
		}
		if field.Default != "" {
			args[field.Name] = field.Default
		}
	}

	return args, nil
}

// normalize round-trips the arguments through encoding/json so the validator
// only ever sees plain JSON values.
func normalize(raw map[string]any) (map[string]any, error) {
	if raw == nil {
		return map[string]any{}, nil
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(buf))
	decoder.UseNumber()

	out := map[string]any{}
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}

	return out, nil
}

type violation struct {
	field   string
	keyword string
	message string
}

// describe turns the validator's error tree into a single message for the
// first declared field that failed.
func (s *Schema) describe(ve *jsonschema.ValidationError, instance map[string]any) *Error {
	violations := map[string]violation{}

	for _, leaf := range leaves(ve) {
		keyword := leaf.KeywordLocation[strings.LastIndex(leaf.KeywordLocation, "/")+1:]

		if keyword == "required" {
			for _, field := range s.Fields {
				if _, ok := instance[field.Name]; field.Required && !ok {
					violations[field.Name] = violation{field: field.Name, keyword: keyword}
				}
			}
			continue
		}

		name := strings.TrimPrefix(leaf.InstanceLocation, "/")
		if _, seen := violations[name]; !seen {
			violations[name] = violation{field: name, keyword: keyword, message: leaf.Message}
		}
	}

	for _, field := range s.Fields {
		if v, ok := violations[field.Name]; ok {
			return field.explain(v)
		}
	}

	return &Error{
		Field:      "arguments",
		Constraint: ConstraintSchema,
		Message:    fmt.Sprintf("arguments are invalid: %s", ve.Message),
	}
}

func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}

	var out []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		out = append(out, leaves(cause)...)
	}

	return out
}

func (f Field) explain(v violation) *Error {
	switch v.keyword {
	case "required":
		return &Error{Field: f.Name, Constraint: ConstraintRequired, Message: f.Name + " is required"}
	case "type":
		return &Error{Field: f.Name, Constraint: ConstraintType, Message: f.Name + " must be a string"}
	case "minLength", "maxLength":
		return &Error{Field: f.Name, Constraint: ConstraintLength, Message: f.lengthMessage()}
	case "enum":
		return &Error{
			Field:      f.Name,
			Constraint: ConstraintEnum,
			Message:    fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Enum, ", ")),
		}
	}

	return &Error{
		Field:      f.Name,
		Constraint: ConstraintSchema,
		Message:    fmt.Sprintf("%s is invalid: %s", f.Name, v.message),
	}
}

func (f Field) lengthMessage() string {
	switch {
	case f.MinLength > 0 && f.MinLength == f.MaxLength:
		return fmt.Sprintf("%s must be exactly %d characters", f.Name, f.MinLength)
	case f.MinLength > 0 && f.MaxLength > 0:
		return fmt.Sprintf("%s must be between %d and %d characters", f.Name, f.MinLength, f.MaxLength)
	case f.MinLength > 0:
		return fmt.Sprintf("%s must be at least %d characters", f.Name, f.MinLength)
	default:
		return fmt.Sprintf("%s must be at most %d characters", f.Name, f.MaxLength)
	}
}
