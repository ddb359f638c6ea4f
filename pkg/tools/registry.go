package tools

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// InvocationObserver receives one notification per dispatched tool call.
type InvocationObserver interface {
	ObserveInvocation(tool, outcome string, elapsed time.Duration)
}

// Registry manages tool registration and dispatch. For every call it
// validates the arguments, checks that an API key is configured, runs the
// tool and flattens the outcome into a single text result. It never returns
// a Go error to the MCP server.
type Registry struct {
	server    *server.MCPServer
	tools     map[string]Tool
	hasAPIKey bool
	logger    *log.Logger
	observer  InvocationObserver
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for invocation logs.
func WithLogger(logger *log.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithObserver sets the metrics observer.
func WithObserver(observer InvocationObserver) RegistryOption {
	return func(r *Registry) {
		r.observer = observer
	}
}

// NewRegistry creates a registry bound to mcpServer. hasAPIKey is fixed for
// the lifetime of the process.
func NewRegistry(mcpServer *server.MCPServer, hasAPIKey bool, opts ...RegistryOption) *Registry {
	r := &Registry{
		server:    mcpServer,
		tools:     make(map[string]Tool),
		hasAPIKey: hasAPIKey,
		logger:    log.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterTool registers a tool with the server
func (r *Registry) RegisterTool(tool Tool) {
	r.tools[tool.Name()] = tool

	if r.server != nil {
		r.server.AddTool(tool.Handle(), r.Handler(tool))
	}
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Tool returns the registered tool called name.
func (r *Registry) Tool(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Handler adapts a tool to mcp-go's handler signature.
func (r *Registry) Handler(tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return r.Invoke(ctx, tool, request.GetArguments()).ToMCP(), nil
	}
}

// Dispatch invokes the tool registered under name.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	tool, ok := r.tools[name]
	if !ok {
		return Failure(NewError(KindValidation, fmt.Errorf("unknown tool: %s", name)))
	}

	return r.Invoke(ctx, tool, args)
}

// Invoke runs the full pipeline for one call.
func (r *Registry) Invoke(ctx context.Context, tool Tool, args map[string]any) (result Result) {
	start := time.Now()
	logger := r.logger.With("tool", tool.Name(), "invocation", uuid.NewString())

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("tool handler panicked", "panic", rec)
			result = Failure(NewError(KindInternal, fmt.Errorf("%w: %v", ErrInternal, rec)))
		}

		elapsed := time.Since(start)
		if r.observer != nil {
			r.observer.ObserveInvocation(tool.Name(), result.Outcome(), elapsed)
		}

		if result.OK() {
			logger.Debug("tool completed", "duration", elapsed)
		} else {
			logger.Warn("tool failed", "kind", result.Err.Kind, "error", result.Err.Detail, "duration", elapsed)
		}
	}()

	validated, err := tool.Schema().Validate(args)
	if err != nil {
		return Failure(err)
	}

	if !r.hasAPIKey {
		return Failure(ErrMissingAPIKey)
	}

	return tool.Run(ctx, validated)
}
