package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestServer() *server.MCPServer {
	s := server.NewMCPServer("uspto-tsdr-mcp", "test", server.WithToolCapabilities(false))
	s.AddTool(
		mcp.NewTool("ping", mcp.WithDescription("Replies with pong")),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)
	return s
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestServeStdio(t *testing.T) {
	Convey("Given a stdio session with an initialize and a tool call", t, func() {
		in := strings.NewReader(strings.Join([]string{
			`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`,
			`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"ping","arguments":{}}}`,
		}, "\n") + "\n")
		out := &bytes.Buffer{}

		err := ServeStdio(context.Background(), newTestServer(), in, out, quietLogger())

		Convey("It should answer each request on its own line and exit at EOF", func() {
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			So(len(lines), ShouldEqual, 2)
			So(lines[0], ShouldContainSubstring, `"id":1`)
			So(lines[0], ShouldContainSubstring, "uspto-tsdr-mcp")
			So(lines[1], ShouldContainSubstring, `"id":2`)
			So(lines[1], ShouldContainSubstring, "pong")
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		reader, writer := io.Pipe()
		defer writer.Close()

		err := ServeStdio(ctx, newTestServer(), reader, io.Discard, quietLogger())

		Convey("It should exit cleanly", func() {
			So(err, ShouldBeNil)
		})
	})
}

func TestRouter(t *testing.T) {
	Convey("Given the HTTP router", t, func() {
		metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		})

		router := NewRouter(RouterConfig{
			MCPServer: newTestServer(),
			Health:    HealthInfo{Service: "uspto-tsdr-mcp", Version: "1.2.3"},
			Metrics:   metrics,
			Logger:    quietLogger(),
		})

		serve := func(req *http.Request) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			return rec
		}

		Convey("GET /health should report healthy", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/health", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldEqual, "application/json")
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")

			var body HealthResponse
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Status, ShouldEqual, "healthy")
			So(body.Version, ShouldEqual, "1.2.3")
			So(body.Service, ShouldEqual, "uspto-tsdr-mcp")
			So(body.Timestamp, ShouldNotBeEmpty)
		})

		Convey("Unknown paths should return the JSON 404", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/nope", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, `{"error":"Not found"}`)
		})

		Convey("Preflight requests should be answered without reaching a handler", func() {
			rec := serve(httptest.NewRequest(http.MethodOptions, "/mcp", nil))

			So(rec.Code, ShouldEqual, http.StatusNoContent)
			So(rec.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			So(rec.Header().Get("Access-Control-Allow-Methods"), ShouldContainSubstring, "POST")
		})

		Convey("GET /metrics should be served", func() {
			rec := serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldEqual, "# metrics")
		})

		Convey("POST /mcp should dispatch a tool call", func() {
			req := httptest.NewRequest(http.MethodPost, MCPPath, strings.NewReader(
				`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"ping","arguments":{}}}`,
			))
			req.Header.Set("Content-Type", "application/json")

			rec := serve(req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"id":7`)
			So(rec.Body.String(), ShouldContainSubstring, "pong")
		})
	})

	Convey("Given a router without metrics", t, func() {
		router := NewRouter(RouterConfig{MCPServer: newTestServer(), Logger: quietLogger()})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		Convey("/metrics should fall through to the 404", func() {
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestServeListener(t *testing.T) {
	Convey("Given a server on an ephemeral port", t, func() {
		listener := httptest.NewUnstartedServer(nil).Listener
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- ServeListener(ctx, listener, HealthCheckHandler(HealthInfo{Service: "s", Version: "v"}), quietLogger())
		}()

		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		So(err, ShouldBeNil)
		resp.Body.Close()

		Convey("It should shut down when the context is cancelled", func() {
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			cancel()
			So(<-done, ShouldBeNil)
		})
	})
}
