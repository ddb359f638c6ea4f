// Package validate declares tool argument schemas and checks call arguments
// against them before any handler runs.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Field declares one string argument of a tool.
type Field struct {
	Name        string
	Description string
	Required    bool
	MinLength   int
	MaxLength   int
	Enum        []string
	Default     string
}

// Schema is the ordered argument declaration of a single tool. The same
// declaration produces the advertised MCP input schema and the compiled
// validator, so the two cannot drift apart.
type Schema struct {
	Fields []Field

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// NewSchema creates a schema from the given fields.
func NewSchema(fields ...Field) *Schema {
	return &Schema{Fields: fields}
}

// Field returns the declaration for name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

// ToolOptions renders the fields as mcp-go property options.
func (s *Schema) ToolOptions() []mcp.ToolOption {
	opts := make([]mcp.ToolOption, 0, len(s.Fields))

	for _, field := range s.Fields {
		props := []mcp.PropertyOption{}

		if field.Description != "" {
			props = append(props, mcp.Description(field.Description))
		}
		if field.Required {
			props = append(props, mcp.Required())
		}
		if field.MinLength > 0 {
			props = append(props, mcp.MinLength(field.MinLength))
		}
		if field.MaxLength > 0 {
			props = append(props, mcp.MaxLength(field.MaxLength))
		}
		if len(field.Enum) > 0 {
			props = append(props, mcp.Enum(field.Enum...))
		}
		if field.Default != "" {
			props = append(props, mcp.DefaultString(field.Default))
		}

		opts = append(opts, mcp.WithString(field.Name, props...))
	}

	return opts
}

// Document returns the JSON Schema document for the declaration.
func (s *Schema) Document() ([]byte, error) {
	tool := mcp.NewTool("arguments", s.ToolOptions()...)
	return json.Marshal(tool.InputSchema)
}

// Compile builds the draft-07 validator once and caches it.
func (s *Schema) Compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		doc, err := s.Document()
		if err != nil {
			s.err = fmt.Errorf("failed to marshal schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7

		if err := compiler.AddResource("arguments.json", bytes.NewReader(doc)); err != nil {
			s.err = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}

		s.compiled, s.err = compiler.Compile("arguments.json")
		if s.err != nil {
			s.err = fmt.Errorf("failed to compile schema: %w", s.err)
		}
	})

	return s.compiled, s.err
}
