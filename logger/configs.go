package logger

import "os"

// Log level names accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Level controls the minimum emitted log level.
	// Unrecognized values fall back to info.
	Level string `yaml:"level" env:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every log entry as a default field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// NewConfig reads logger settings from environment variables.
func NewConfig() Config {
	cfg := Config{
		Level:       os.Getenv("ZAP_LOGGER_LEVEL"),
		ServiceName: os.Getenv("SERVICE_NAME"),
	}
	if cfg.Level == "" {
		cfg.Level = Info
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "recipebench"
	}
	return cfg
}
