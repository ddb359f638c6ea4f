package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Result is either a success payload or an Error, never both.
type Result struct {
	Text string
	Err  *Error
}

// Success wraps a text payload.
func Success(text string) Result {
	return Result{Text: text}
}

// Failure wraps an error, classifying it when needed.
func Failure(err error) Result {
	return Result{Err: Classify(err)}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Err == nil
}

// Outcome is the metrics label for the result.
func (r Result) Outcome() string {
	if r.OK() {
		return "success"
	}
	return string(r.Err.Kind)
}

// String flattens the result into the single text payload callers receive.
func (r Result) String() string {
	if r.OK() {
		return r.Text
	}
	return r.Err.Message()
}

// ToMCP converts the result to an MCP tool result with one text item. Failures
// carry the isError flag.
func (r Result) ToMCP() *mcp.CallToolResult {
	if r.OK() {
		return mcp.NewToolResultText(r.Text)
	}
	return mcp.NewToolResultError(r.Err.Message())
}
