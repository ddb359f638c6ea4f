// Package metrics exposes Prometheus instruments for tool invocations and the
// upstream requests they trigger.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ToolInvocations  *prometheus.CounterVec
	ToolDuration     *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		ToolInvocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tsdr_mcp_tool_invocations_total",
			Help: "Tool invocations by tool name and outcome",
		}, []string{"tool", "outcome"}),

		ToolDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tsdr_mcp_tool_duration_seconds",
			Help:    "Tool invocation latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),

		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tsdr_mcp_upstream_requests_total",
			Help: "Requests sent to the USPTO TSDR API by endpoint and status code",
		}, []string{"endpoint", "code"}),

		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tsdr_mcp_upstream_duration_seconds",
			Help:    "USPTO TSDR API latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// ObserveInvocation records one tool call. outcome is "success" or an error kind.
func (m *Metrics) ObserveInvocation(tool, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.ToolInvocations.WithLabelValues(tool, outcome).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveUpstream records one upstream request. Status 0 is labelled "error".
func (m *Metrics) ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}

	m.UpstreamRequests.WithLabelValues(endpoint, code).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
