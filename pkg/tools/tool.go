// Package tools provides the tool interface, the tagged result type and the
// dispatcher that exposes tools over MCP.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/validate"
)

// Tool defines the interface for all tools in the system
type Tool interface {
	// Name returns the name of the tool
	Name() string

	// Handle returns the underlying MCP tool
	Handle() mcp.Tool

	// Schema returns the argument declaration checked before Run
	Schema() *validate.Schema

	// Run executes the tool with validated arguments
	Run(ctx context.Context, args validate.Args) Result
}

// BaseTool provides common functionality for all tools
type BaseTool struct {
	name   string
	handle mcp.Tool
	schema *validate.Schema
}

// NewBaseTool builds the MCP definition from the schema so the advertised
// input schema is exactly what the dispatcher enforces. Every tool here is a
// read-only lookup against an external API.
func NewBaseTool(name, description string, schema *validate.Schema) *BaseTool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}

	return &BaseTool{
		name:   name,
		handle: mcp.NewTool(name, append(opts, schema.ToolOptions()...)...),
		schema: schema,
	}
}

// Handle returns the MCP Tool definition
func (b *BaseTool) Handle() mcp.Tool {
	return b.handle
}

// Name returns the name of the tool
func (b *BaseTool) Name() string {
	return b.name
}

// Schema returns the argument declaration
func (b *BaseTool) Schema() *validate.Schema {
	return b.schema
}
