// Package transport exposes the MCP server over stdio and HTTP. Both front
// ends are pure pass-through to the tool registry.
package transport

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
)

// ServeStdio reads newline-delimited JSON-RPC from in and writes responses to
// out until in is exhausted or ctx is cancelled. Cancellation is a clean exit.
func ServeStdio(ctx context.Context, mcpServer *server.MCPServer, in io.Reader, out io.Writer, logger *log.Logger) error {
	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))

	logger.Info("serving MCP over stdio")

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
