package metrics

import "os"

// Config holds settings for the Prometheus metrics server.
type Config struct {
	// Address is the listen address of the /metrics HTTP server.
	Address string `yaml:"address" env:"METRICS_ADDR"`

	// ServiceName is attached as a constant label to every metric.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go runtime, process, and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors"`
}

// NewConfig reads from environment variables with sensible defaults.
func NewConfig() Config {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "recipebench"
	}

	return Config{
		Address:                 addr,
		ServiceName:             service,
		EnableDefaultCollectors: true,
	}
}
