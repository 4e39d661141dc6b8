package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAIModel      = "text-embedding-3-small"
	openAIDimensions = 1536
)

// openAIProvider delegates to an OpenAI-compatible embeddings API.
// Dense-only; all input strings are batched in one upstream call.
type openAIProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newOpenAIProvider(cfg *Config) (*openAIProvider, error) {
	client, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	return &openAIProvider{
		baseURL:    strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		apiKey:     cfg.OpenAIAPIKey,
		httpClient: client,
	}, nil
}

// Embed generates embeddings via the /embeddings endpoint.
func (p *openAIProvider) Embed(ctx context.Context, texts []string) ([]EmbeddingResult, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: %w", ErrNoTexts)
	}

	reqBody := map[string]any{
		"model": openAIModel,
		"input": texts,
	}

	url := p.baseURL + "/embeddings"

	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := postJSON(ctx, p.httpClient, url, p.apiKey, reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) == 0 {
		return nil, &MalformedResponseError{
			URL:             url,
			AttemptedShapes: []string{"input"},
			Snippet:         "empty data array",
		}
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d embeddings for %d texts", len(parsed.Data), len(texts))
	}

	out := make([]EmbeddingResult, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = EmbeddingResult{Dense: d.Embedding}
	}

	return out, nil
}

func (p *openAIProvider) Dimensions() int { return openAIDimensions }

func (p *openAIProvider) ModelName() string { return openAIModel }
