// Package metrics provides Prometheus-based observability for the search
// harness.
//
// Each process maintains its own isolated registry exposed over a dedicated
// HTTP server at /metrics. Built-in metrics track test evaluations by
// status, search latency by mode, and embedding requests by provider; the
// Create* helpers register additional collectors on demand.
//
// The package integrates with fx through FXModule, which starts and stops
// the metrics server with the application lifecycle.
package metrics
