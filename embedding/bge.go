package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	bgeModel      = "bge-m3"
	bgeDimensions = 1024

	// bgeBatchSize bounds each upstream request to avoid oversized payloads.
	bgeBatchSize = 20
)

// bgeProvider issues HTTP POST requests to a self-hosted BGE-M3 embedding
// service. Dense + sparse output.
//
// Deployments of the service differ in the request field they accept, so
// each batch probes an ordered list of request shapes and stops at the
// first one that yields a parseable response. "texts" comes first because
// it is the documented wire format; "inputs" and the OpenAI-style "input"
// cover older deployments. The order beyond the first entry is arbitrary.
type bgeProvider struct {
	apiURL     string
	httpClient *http.Client
}

func newBGEProvider(cfg *Config) (*bgeProvider, error) {
	client, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	return &bgeProvider{
		apiURL:     cfg.bgeAPIURL(),
		httpClient: client,
	}, nil
}

// Embed splits texts into fixed-size batches and concatenates the results,
// preserving input order. A failing batch fails the whole call.
func (p *bgeProvider) Embed(ctx context.Context, texts []string) ([]EmbeddingResult, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: %w", ErrNoTexts)
	}

	out := make([]EmbeddingResult, 0, len(texts))
	for start := 0; start < len(texts); start += bgeBatchSize {
		end := start + bgeBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := p.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}

	return out, nil
}

type requestShape struct {
	name    string
	payload map[string]any
}

func requestShapes(texts []string) []requestShape {
	var input any = texts
	if len(texts) == 1 {
		input = texts[0]
	}
	return []requestShape{
		{name: "texts", payload: map[string]any{"texts": texts}},
		{name: "inputs", payload: map[string]any{"inputs": texts}},
		{name: "input", payload: map[string]any{"input": input}},
	}
}

// embedBatch tries each request shape in order; the first successful shape
// determines the result. Transport errors move on to the next shape and are
// surfaced only if every shape fails; a 2xx response that no schema can
// parse surfaces a MalformedResponseError instead.
func (p *bgeProvider) embedBatch(ctx context.Context, texts []string) ([]EmbeddingResult, error) {
	var (
		lastErr   error
		lastBody  []byte
		attempted []string
	)

	for _, shape := range requestShapes(texts) {
		attempted = append(attempted, shape.name)

		body, err := postJSONRaw(ctx, p.httpClient, p.apiURL, shape.payload)
		if err != nil {
			lastErr = err
			continue
		}
		lastBody = body

		if results, ok := parseEmbeddings(body, len(texts)); ok {
			return results, nil
		}
	}

	if lastBody == nil && lastErr != nil {
		return nil, fmt.Errorf("embedding: bge-m3 request to %s failed: %w", p.apiURL, lastErr)
	}
	return nil, &MalformedResponseError{
		URL:             p.apiURL,
		AttemptedShapes: attempted,
		Snippet:         bodySnippet(lastBody),
	}
}

func (p *bgeProvider) Dimensions() int { return bgeDimensions }

func (p *bgeProvider) ModelName() string { return bgeModel }

// ── Response schema probing ──────────────────────────────────────────────
//
// Known response schemas, attempted in order:
//
//  1. {"results": [{"dense": [...], "sparse": {"indices": [...], "values": [...]}}]}
//     (the service's native schema, the only one carrying sparse vectors)
//  2. {"embeddings"|"data"|"vectors"|"embedding": [[...], ...]}: keyed
//     vector lists from generic inference servers; dense only.
//  3. [[...], ...]: a bare list of vectors; dense only.
//
// A schema "matches" only when it yields exactly one vector per input text.

func parseEmbeddings(body []byte, want int) ([]EmbeddingResult, bool) {
	if results, ok := parseResultsSchema(body, want); ok {
		return results, true
	}
	if results, ok := parseKeyedSchema(body, want); ok {
		return results, true
	}
	return parseBareSchema(body, want)
}

func parseResultsSchema(body []byte, want int) ([]EmbeddingResult, bool) {
	var parsed struct {
		Results []struct {
			Dense  []float32     `json:"dense"`
			Sparse *SparseVector `json:"sparse"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Results) != want {
		return nil, false
	}

	out := make([]EmbeddingResult, len(parsed.Results))
	for i, r := range parsed.Results {
		if len(r.Dense) == 0 {
			return nil, false
		}
		sparse := r.Sparse
		if sparse != nil && len(sparse.Indices) != len(sparse.Values) {
			// Broken invariant: the schema nominally matched but the data
			// is unusable. Treat as not-this-shape.
			return nil, false
		}
		out[i] = EmbeddingResult{Dense: r.Dense, Sparse: sparse}
	}
	return out, true
}

func parseKeyedSchema(body []byte, want int) ([]EmbeddingResult, bool) {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}

	for _, key := range []string{"embeddings", "data", "vectors", "embedding"} {
		raw, present := parsed[key]
		if !present {
			continue
		}
		if results, ok := parseBareSchema(raw, want); ok {
			return results, true
		}
	}
	return nil, false
}

func parseBareSchema(body []byte, want int) ([]EmbeddingResult, bool) {
	var vectors [][]float32
	if err := json.Unmarshal(body, &vectors); err == nil && len(vectors) == want {
		out := make([]EmbeddingResult, len(vectors))
		for i, v := range vectors {
			if len(v) == 0 {
				return nil, false
			}
			out[i] = EmbeddingResult{Dense: v}
		}
		return out, true
	}

	// A single input may come back as one flat vector.
	if want == 1 {
		var vector []float32
		if err := json.Unmarshal(body, &vector); err == nil && len(vector) > 0 {
			return []EmbeddingResult{{Dense: vector}}, true
		}
	}

	return nil, false
}
