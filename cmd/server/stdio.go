package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/config"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/transport"
)

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(version)
			if err != nil {
				return err
			}

			a := newApp(cfg, os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := transport.ServeStdio(ctx, a.server, os.Stdin, os.Stdout, a.logger); err != nil {
				a.logger.Error("stdio server stopped", "error", err)
				return err
			}

			a.logger.Info("stdio server shutdown complete")
			return nil
		},
	}
}
