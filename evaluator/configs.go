package evaluator

import (
	"os"
	"strconv"
)

// Config holds evaluation settings.
type Config struct {
	// DefaultCollection is searched when a test does not name one.
	DefaultCollection string `yaml:"default_collection" env:"COLLECTION_NAME"`

	// Limit is the size of the result window inspected per test.
	Limit int `yaml:"limit" env:"SEARCH_LIMIT"`
}

// NewConfig reads from environment variables with sensible defaults.
func NewConfig() *Config {
	collection := os.Getenv("COLLECTION_NAME")
	if collection == "" {
		collection = "distill_hybrid_v2"
	}

	limit := 10
	if v := os.Getenv("SEARCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	return &Config{
		DefaultCollection: collection,
		Limit:             limit,
	}
}
