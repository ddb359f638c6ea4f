// Command server runs the USPTO TSDR MCP server over stdio or HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tsdr-mcp",
	Short: "MCP server for the USPTO Trademark Status and Document Retrieval API",
	Long: `tsdr-mcp exposes read-only USPTO TSDR lookups as MCP tools:
search_by_serial, search_by_registration, status, image and documents.

Set USPTO_API_KEY before starting. Without it every tool call returns
instructions for obtaining a key.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tsdr-mcp version %s\n", version))

	rootCmd.AddCommand(newStdioCmd())
	rootCmd.AddCommand(newHTTPCmd())
}
