package qdrant

import (
	"context"
	"fmt"

	"github.com/searchlab/recipebench/vectordb"
)

//
// ──────────────────────────────────────────────────────────────
//   VECTORDB SERVICE ADAPTER
// ──────────────────────────────────────────────────────────────
//
// ServiceAdapter exposes the Qdrant wrapper through the database-agnostic
// vectordb.Service interface. Application packages (evaluator, dashboard,
// loader) depend on the interface only; this adapter is the single place
// where search modes are dispatched to concrete Qdrant query shapes.
//

// ServiceAdapter implements vectordb.Service backed by QdrantClient.
type ServiceAdapter struct {
	client *QdrantClient
}

// NewServiceAdapter wraps a QdrantClient in the vectordb.Service interface.
func NewServiceAdapter(client *QdrantClient) *ServiceAdapter {
	return &ServiceAdapter{client: client}
}

var _ vectordb.Service = (*ServiceAdapter)(nil)

// Query dispatches a search request to the query implementation matching
// its mode. Sparse and hybrid modes require a sparse vector in the request;
// callers that may hold dense-only embeddings decide their own fallback
// before reaching this layer.
func (a *ServiceAdapter) Query(ctx context.Context, req vectordb.SearchRequest) ([]vectordb.Hit, error) {
	collection := req.Collection
	if collection == "" {
		collection = a.client.DefaultCollection()
	}

	switch req.Mode {
	case vectordb.ModeDense, "":
		return a.client.QueryDense(ctx, collection, req.Dense, req.Limit, req.ScoreThreshold)
	case vectordb.ModeSparse:
		if req.Sparse == nil {
			return nil, fmt.Errorf("sparse search requested but no sparse vector provided")
		}
		return a.client.QuerySparse(ctx, collection, req.Sparse, req.Limit, req.ScoreThreshold)
	case vectordb.ModeHybrid:
		if req.Sparse == nil {
			return nil, fmt.Errorf("hybrid search requested but no sparse vector provided")
		}
		return a.client.QueryHybrid(ctx, collection, req.Dense, req.Sparse, req.Limit)
	default:
		return nil, fmt.Errorf("unknown search mode %q", req.Mode)
	}
}

// Upsert inserts or updates points in the collection.
func (a *ServiceAdapter) Upsert(ctx context.Context, collection string, points []vectordb.Point) error {
	if collection == "" {
		collection = a.client.DefaultCollection()
	}
	return a.client.Upsert(ctx, collection, points)
}

// EnsureCollection creates the hybrid collection if it does not exist.
func (a *ServiceAdapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64, recreate bool) error {
	if name == "" {
		name = a.client.DefaultCollection()
	}
	return a.client.EnsureHybridCollection(ctx, name, vectorSize, recreate)
}

// GetCollection returns metadata about a collection.
func (a *ServiceAdapter) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	if name == "" {
		name = a.client.DefaultCollection()
	}
	return a.client.GetCollection(ctx, name)
}

// ListCollections returns the names of all collections.
func (a *ServiceAdapter) ListCollections(ctx context.Context) ([]string, error) {
	return a.client.ListCollections(ctx)
}

// Delete removes points by ID.
func (a *ServiceAdapter) Delete(ctx context.Context, collection string, ids []string) error {
	if collection == "" {
		collection = a.client.DefaultCollection()
	}
	return a.client.Delete(ctx, collection, ids)
}
