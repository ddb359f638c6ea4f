package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/config"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/transport"
)

func newHTTPCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve MCP over streamable HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(version)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			a := newApp(cfg, os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return transport.Serve(ctx, fmt.Sprintf(":%d", cfg.Server.Port), a.router(), a.logger)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "port to listen on (overrides PORT)")

	return cmd
}
