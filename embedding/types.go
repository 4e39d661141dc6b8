package embedding

import "context"

// SparseVector is a lexical/term-importance representation: parallel lists
// of token ids and weights. Invariant: len(Indices) == len(Values).
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// EmbeddingResult holds the vector representations of one input text.
// Dense is always present; Sparse only when the active provider supports
// sparse output. Results are created fresh per request and never mutated.
type EmbeddingResult struct {
	Dense  []float32     `json:"dense"`
	Sparse *SparseVector `json:"sparse,omitempty"`
}

// Provider contract
type Provider interface {
	// Embed generates embeddings for the given texts, preserving input order.
	Embed(ctx context.Context, texts []string) ([]EmbeddingResult, error)

	// Dimensions reports the dense vector length this provider produces.
	Dimensions() int

	// ModelName identifies the provider's model for logging and diagnostics.
	ModelName() string
}
