// Package tracer wraps OpenTelemetry tracing behind a small API: span
// creation, error recording, attribute helpers, and W3C trace context
// propagation.
//
// Export over OTLP/HTTP is optional and controlled by configuration; when
// disabled, spans still exist in-process so instrumentation code stays
// identical across environments.
package tracer
