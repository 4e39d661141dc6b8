package teststore

import "os"

// Config holds settings for the test case store.
type Config struct {
	// Path is the JSON file holding the test document.
	Path string `yaml:"path" env:"TESTS_FILE"`
}

// NewConfig reads from environment variables with sensible defaults.
func NewConfig() *Config {
	path := os.Getenv("TESTS_FILE")
	if path == "" {
		path = "search_tests.json"
	}
	return &Config{Path: path}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Path == "" {
		return ErrEmptyPath
	}
	return nil
}
