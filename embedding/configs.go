package embedding

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported provider names for Config.Provider.
const (
	ProviderOpenAI = "openai"
	ProviderBGEM3  = "bge-m3"
)

type Config struct {
	// Provider selects the backend: "openai" or "bge-m3".
	// Exactly one backend is active for the process lifetime.
	Provider string

	// OpenAI backend
	OpenAIAPIKey  string // required when Provider is "openai"
	OpenAIBaseURL string // default https://api.openai.com/v1

	// Self-hosted BGE-M3 backend
	BGEURL      string // base URL, may already include a port
	BGEPort     string // appended when BGEURL carries no port
	BGEEndpoint string // request path, default /embed

	// HTTPTimeoutS bounds each upstream call in seconds.
	HTTPTimeoutS int

	// ProxyURL routes requests through an HTTP proxy when set.
	ProxyURL string
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	timeout := 60
	if v := os.Getenv("BGE_M3_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	provider := strings.ToLower(os.Getenv("EMBEDDING_PROVIDER"))
	if provider == "" {
		provider = ProviderBGEM3
	}

	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	bgeURL := os.Getenv("BGE_M3_URL")
	if bgeURL == "" {
		bgeURL = "http://localhost"
	}
	bgePort := os.Getenv("BGE_M3_PORT")
	if bgePort == "" {
		bgePort = "8000"
	}
	bgeEndpoint := os.Getenv("BGE_M3_ENDPOINT")
	if bgeEndpoint == "" {
		bgeEndpoint = "/embed"
	}

	proxy := os.Getenv("HTTP_PROXY")
	if proxy == "" {
		proxy = os.Getenv("HTTPS_PROXY")
	}

	return &Config{
		Provider:      provider,
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: baseURL,
		BGEURL:        bgeURL,
		BGEPort:       bgePort,
		BGEEndpoint:   bgeEndpoint,
		HTTPTimeoutS:  timeout,
		ProxyURL:      proxy,
	}
}

// Validate ensures the selected provider has everything it needs.
// Failing here is a configuration error: the process must not proceed.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("embedding: %w", ErrMissingAPIKey)
		}
	case ProviderBGEM3:
		if c.BGEURL == "" {
			return fmt.Errorf("embedding: %w", ErrMissingEndpoint)
		}
	default:
		return fmt.Errorf("embedding: %w: %q", ErrUnsupportedProvider, c.Provider)
	}
	return nil
}

// bgeAPIURL resolves the full endpoint URL for the self-hosted backend.
// A port is appended only when the base URL does not already carry one.
func (c *Config) bgeAPIURL() string {
	base := strings.TrimRight(c.BGEURL, "/")
	if strings.Count(base, ":") <= 1 && c.BGEPort != "" {
		base = base + ":" + c.BGEPort
	}
	return base + c.BGEEndpoint
}
