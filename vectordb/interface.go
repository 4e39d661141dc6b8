package vectordb

import "context"

// Service is the common interface for vector databases supporting hybrid
// (dense + sparse) retrieval. It provides a database-agnostic abstraction
// so application code never touches a concrete client SDK.
//
// Example usage:
//
//	func NewEvaluator(db vectordb.Service) *Evaluator {
//	    return &Evaluator{db: db}
//	}
type Service interface {
	// Query performs a similarity search. The request's Mode decides the
	// retrieval path; hybrid mode requires both dense and sparse vectors
	// and delegates fusion to the database's query engine.
	Query(ctx context.Context, req SearchRequest) ([]Hit, error)

	// Upsert adds points to a collection. Batch processing is handled
	// internally for efficiency.
	Upsert(ctx context.Context, collection string, points []Point) error

	// EnsureCollection creates a hybrid collection (dense cosine vector of
	// the given size plus an IDF-weighted sparse vector) if it doesn't
	// exist. With recreate set, an existing collection is dropped first.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64, recreate bool) error

	// GetCollection retrieves metadata about a collection.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// ListCollections returns names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// Delete removes points by their IDs from a collection.
	Delete(ctx context.Context, collection string, ids []string) error
}
