package qdrant

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds connection and behavior settings for the Qdrant client.
//
// Either URL or Host+Port may be given; a non-empty URL wins. The URL form
// exists for managed deployments (https://host:port with an API key), the
// host+port form for local instances.
//
// Example:
//
//	cfg := qdrant.NewConfig()
//	cfg.Host = "localhost"
//	cfg.Port = 6334
type Config struct {
	// URL is the full endpoint, e.g. "https://qdrant.internal:6334".
	// When set it overrides Host/Port, and an https scheme enables TLS.
	URL string `yaml:"url" env:"QDRANT_URL"`

	// Host of the Qdrant server, e.g. "localhost".
	Host string `yaml:"host" env:"QDRANT_HOST"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// ApiKey is the optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// DefaultCollection is the collection this deployment operates on
	// unless a test case overrides it.
	DefaultCollection string `yaml:"default_collection" env:"COLLECTION_NAME"`

	// CheckCompatibility toggles the client/server version check.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// NewConfig reads from environment variables with local-instance defaults.
func NewConfig() *Config {
	port := 6334
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}

	host := os.Getenv("QDRANT_HOST")
	if host == "" {
		host = "localhost"
	}

	collection := os.Getenv("COLLECTION_NAME")
	if collection == "" {
		collection = "distill_hybrid_v2"
	}

	return &Config{
		URL:                os.Getenv("QDRANT_URL"),
		Host:               host,
		Port:               port,
		ApiKey:             os.Getenv("QDRANT_API_KEY"),
		DefaultCollection:  collection,
		CheckCompatibility: os.Getenv("QDRANT_CHECK_COMPATIBILITY") == "true",
	}
}

// resolve flattens the URL-or-host/port configuration into the concrete
// connection parameters the gRPC client needs.
func (c *Config) resolve() (host string, port int, useTLS bool, err error) {
	if c.URL == "" {
		return c.Host, c.Port, false, nil
	}

	parsed, err := url.Parse(c.URL)
	if err != nil || parsed.Hostname() == "" {
		return "", 0, false, fmt.Errorf("[Qdrant] invalid QDRANT_URL %q", c.URL)
	}

	useTLS = parsed.Scheme == "https"

	port = 6334
	if p := parsed.Port(); p != "" {
		if n, convErr := strconv.Atoi(p); convErr == nil {
			port = n
		}
	} else if useTLS {
		port = 443
	}

	return parsed.Hostname(), port, useTLS, nil
}
