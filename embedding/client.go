package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (backends, HTTP, response shapes) from the
// application layer. Application code should depend on *Client, not on
// Provider or a concrete backend.
type Client struct {
	provider Provider
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the selected provider.
// An unknown provider name or a missing credential fails here, before any
// request is made.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderOpenAI:
		p, err = newOpenAIProvider(cfg)
	case ProviderBGEM3:
		p, err = newBGEProvider(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p}, nil
}

// Embed computes embeddings for all texts, preserving input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([]EmbeddingResult, error) {
	return c.provider.Embed(ctx, texts)
}

// EmbedOne is the singular convenience form of Embed.
func (c *Client) EmbedOne(ctx context.Context, text string) (EmbeddingResult, error) {
	results, err := c.provider.Embed(ctx, []string{text})
	if err != nil {
		return EmbeddingResult{}, err
	}
	if len(results) == 0 {
		return EmbeddingResult{}, fmt.Errorf("embedding: empty result for single text")
	}
	return results[0], nil
}

// Dimensions reports the dense vector length of the active provider.
// Collection schemas must be created with this dimensionality.
func (c *Client) Dimensions() int {
	return c.provider.Dimensions()
}

// ModelName identifies the active provider's model.
func (c *Client) ModelName() string {
	return c.provider.ModelName()
}

// Close releases any internal resources used by the provider.
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
