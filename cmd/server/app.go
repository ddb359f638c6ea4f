package main

import (
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/config"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/metrics"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tools/trademark"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/transport"
	"github.com/theapemachine/mcp-server-uspto-tsdr/pkg/tsdr"
)

// app is everything both transports share.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	metrics  *metrics.Metrics
	server   *server.MCPServer
	registry *tools.Registry
}

// newLogger builds a stderr-style logger from the log settings. stdout is
// reserved for the stdio protocol, so w is never os.Stdout.
func newLogger(w io.Writer, level, format string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          config.ServiceName,
	})

	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(log.JSONFormatter)
	}

	return logger
}

// newApp wires configuration, the upstream client, metrics and the tool
// registry into one MCP server.
func newApp(cfg *config.Config, logOut io.Writer) *app {
	logger := newLogger(logOut, cfg.Log.Level, cfg.Log.Format)
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Warn("configuration warning", "error", err)
	}

	m := metrics.New()

	client := tsdr.NewClient(
		cfg.USPTO.BaseURL,
		cfg.USPTO.APIKey,
		cfg.USPTO.UserAgent,
		tsdr.WithObserver(m),
	)

	mcpServer := server.NewMCPServer(
		config.ServiceName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithLogging(),
	)

	registry := tools.NewRegistry(
		mcpServer,
		cfg.HasAPIKey(),
		tools.WithLogger(logger),
		tools.WithObserver(m),
	)
	trademark.NewProvider(client).Register(registry)

	logger.Info("tools registered",
		"tools", registry.Names(),
		"api_key", tsdr.RedactKey(cfg.USPTO.APIKey),
		"base_url", cfg.USPTO.BaseURL,
		"environment", cfg.Server.Environment,
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		server:   mcpServer,
		registry: registry,
	}
}

func (a *app) router() http.Handler {
	return transport.NewRouter(transport.RouterConfig{
		MCPServer: a.server,
		Health: transport.HealthInfo{
			Service: config.ServiceName,
			Version: a.cfg.Version,
		},
		Metrics: a.metrics.Handler(),
		Logger:  a.logger,
	})
}
