package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementEvaluations increments the evaluation counter with a status label.
// Example: metrics.IncrementEvaluations("PASSED")
func (m *Metrics) IncrementEvaluations(status string) {
	m.evaluationsTotal.WithLabelValues(status).Inc()
}

// RecordSearchDuration records the duration (in seconds) of a search by mode.
// Example: defer metrics.RecordSearchDuration(time.Now(), "hybrid")
func (m *Metrics) RecordSearchDuration(start time.Time, mode string) {
	duration := time.Since(start).Seconds()
	m.searchDuration.WithLabelValues(mode).Observe(duration)
}

// IncrementEmbeddingRequests increments the embedding request counter with a
// provider label.
// Example: metrics.IncrementEmbeddingRequests("bge-m3")
func (m *Metrics) IncrementEmbeddingRequests(provider string) {
	m.embeddingRequests.WithLabelValues(provider).Inc()
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec for resource monitoring.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
