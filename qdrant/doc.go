// Package qdrant provides a modular, dependency-injected client for the
// Qdrant vector database, specialized for hybrid search collections.
//
// The package wraps the official Qdrant Go client and offers a clean,
// testable abstraction for the operations the application needs: creating
// collections with named dense and sparse vector fields, batched point
// ingestion, and dense, sparse, and hybrid (server-side RRF fusion)
// similarity queries. It integrates with the fx dependency injection
// framework.
//
// # Core Features
//
//   - Managed Qdrant client lifecycle with Fx integration
//   - Config struct supporting QDRANT_URL or host/port environment loading
//   - Automatic health checks on client initialization
//   - Hybrid collection schema: "dense" (cosine) + "sparse" (IDF) fields
//   - Safe, batched insertion of hybrid points
//   - Database-agnostic interface via vectordb.Service
//
// # VectorDB Interface
//
// This package includes [ServiceAdapter] which implements the
// database-agnostic [vectordb.Service] interface. Application code depends
// on the interface only:
//
//	import (
//	    "github.com/searchlab/recipebench/qdrant"
//	    "github.com/searchlab/recipebench/vectordb"
//	)
//
//	client, err := qdrant.NewQdrantClient(qdrant.NewConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var db vectordb.Service = qdrant.NewServiceAdapter(client)
//
//	hits, err := db.Query(ctx, &vectordb.SearchRequest{
//	    Mode:  vectordb.ModeHybrid,
//	    Dense: denseVec,
//	    Sparse: &vectordb.SparseVector{Indices: idx, Values: vals},
//	    Limit: 10,
//	})
//
// # Hybrid Queries
//
// Hybrid mode runs two candidate retrievals (dense and sparse) as prefetch
// sub-queries and fuses them with Reciprocal Rank Fusion inside Qdrant's
// query engine. No client-side merging takes place.
//
// # FX Module Integration
//
// The package exposes an Fx module for automatic dependency injection:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// # Configuration
//
// Qdrant can be configured via environment variables:
//
//	QDRANT_URL=https://qdrant.internal:6334   (overrides host/port, https enables TLS)
//	QDRANT_HOST=localhost
//	QDRANT_PORT=6334
//	QDRANT_API_KEY=your-api-key
//	COLLECTION_NAME=distill_hybrid_v2
//
// # Thread Safety
//
// All exported methods on the adapter are safe for concurrent use by
// multiple goroutines.
package qdrant
