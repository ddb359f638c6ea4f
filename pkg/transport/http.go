package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
)

// MCPPath is where the streamable HTTP protocol endpoint is mounted.
const MCPPath = "/mcp"

// HealthInfo is reported by GET /health.
type HealthInfo struct {
	Service string
	Version string
}

// HealthResponse is the liveness document.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// RouterConfig collects what the HTTP front end serves.
type RouterConfig struct {
	MCPServer *server.MCPServer
	Health    HealthInfo
	// Metrics is mounted at /metrics when set.
	Metrics   http.Handler
	Logger    *log.Logger
}

// NewRouter builds the HTTP surface: /health, the MCP endpoint, optional
// /metrics, permissive CORS and JSON 404s.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware)

	r.Get("/health", HealthCheckHandler(cfg.Health))

	r.Handle(MCPPath, server.NewStreamableHTTPServer(cfg.MCPServer, server.WithStateLess(true)))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	return r
}

// HealthCheckHandler returns the fixed liveness document.
func HealthCheckHandler(info HealthInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   info.Version,
			Service:   info.Service,
		})
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully. Listen failures such as a bound port are returned immediately.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return ServeListener(ctx, listener, handler, logger)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, listener net.Listener, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over HTTP", "addr", listener.Addr().String(), "endpoint", MCPPath)
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
