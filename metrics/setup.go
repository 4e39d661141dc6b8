package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// The service maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	// Core built-in metrics
	evaluationsTotal  *prometheus.CounterVec
	searchDuration    *prometheus.HistogramVec
	embeddingRequests *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system
// collectors, wraps all metrics with a constant `service` label, and
// creates an HTTP server exposing the /metrics endpoint.
//
// The built-in metrics cover the core activity of the harness:
//   - evaluations_total{status}: test evaluations by PASSED/WARNING/FAILED
//   - search_duration_seconds{mode}: query latency by dense/sparse/hybrid
//   - embedding_requests_total{provider}: upstream embedding calls
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "recipebench"})
//	go m.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically include the label
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.evaluationsTotal = createCounterVec("evaluations_total", "Total number of test evaluations by status", []string{"status"})
	m.searchDuration = createHistogramVec("search_duration_seconds", "Duration of similarity searches in seconds", []string{"mode"}, prometheus.DefBuckets)
	m.embeddingRequests = createCounterVec("embedding_requests_total", "Total number of embedding requests by provider", []string{"provider"})

	wrappedRegistry.MustRegister(
		m.evaluationsTotal,
		m.searchDuration,
		m.embeddingRequests,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return m
}
