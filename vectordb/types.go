package vectordb

// SearchMode selects how a similarity query is executed.
type SearchMode string

const (
	// ModeDense queries using only the dense vector.
	ModeDense SearchMode = "dense"

	// ModeSparse queries using only the sparse vector.
	ModeSparse SearchMode = "sparse"

	// ModeHybrid fuses dense and sparse candidate lists server-side
	// using Reciprocal Rank Fusion.
	ModeHybrid SearchMode = "hybrid"
)

// SparseVector mirrors the embedding-layer sparse representation without
// importing it, keeping this package database- and provider-agnostic.
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// SearchRequest represents a single similarity search query.
type SearchRequest struct {
	// Collection is the target collection to search in.
	Collection string `json:"collection"`

	// Mode selects dense, sparse, or hybrid retrieval. The caller is
	// responsible for supplying the vectors the mode requires.
	Mode SearchMode `json:"mode"`

	// Dense is the query's dense embedding.
	Dense []float32 `json:"dense,omitempty"`

	// Sparse is the query's sparse embedding; required for sparse and
	// hybrid modes.
	Sparse *SparseVector `json:"sparse,omitempty"`

	// Limit is the maximum number of results to return.
	Limit int `json:"limit"`

	// ScoreThreshold drops hits scoring below it when set.
	ScoreThreshold *float32 `json:"scoreThreshold,omitempty"`
}

// Hit is a single search result. Payload is converted to map[string]any so
// callers never see database-specific value types.
type Hit struct {
	// ID is the unique identifier of the matched point.
	ID string `json:"id"`

	// Score is the similarity score (higher = more similar for cosine).
	Score float32 `json:"score"`

	// Payload contains the metadata stored with the vector.
	Payload map[string]any `json:"payload"`
}

// Point is the input for inserting a hybrid vector into a collection.
type Point struct {
	// ID is the unique identifier for this point.
	ID string `json:"id"`

	// Dense is the dense embedding representation.
	Dense []float32 `json:"dense"`

	// Sparse is the optional sparse representation.
	Sparse *SparseVector `json:"sparse,omitempty"`

	// Payload is optional metadata to store with the vectors.
	Payload map[string]any `json:"payload,omitempty"`
}

// Collection contains metadata about a vector collection.
type Collection struct {
	// Name is the unique identifier of the collection.
	Name string `json:"name"`

	// Status indicates the operational state (e.g., "Green", "Yellow").
	Status string `json:"status"`

	// Points is the number of stored points.
	Points uint64 `json:"points"`

	// VectorSize is the dense dimension of vectors in this collection.
	VectorSize int `json:"vectorSize"`

	// Distance is the similarity metric (e.g., "Cosine").
	Distance string `json:"distance"`
}
