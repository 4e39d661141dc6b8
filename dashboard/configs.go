package dashboard

import "os"

// Config holds settings for the dashboard HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr" env:"DASHBOARD_ADDR"`

	// ReleaseMode switches gin out of debug logging.
	ReleaseMode bool `yaml:"release_mode" env:"DASHBOARD_RELEASE_MODE"`
}

// NewConfig reads from environment variables with sensible defaults.
func NewConfig() *Config {
	addr := os.Getenv("DASHBOARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return &Config{
		Addr:        addr,
		ReleaseMode: os.Getenv("DASHBOARD_RELEASE_MODE") != "false",
	}
}
