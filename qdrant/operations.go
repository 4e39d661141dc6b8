package qdrant

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/searchlab/recipebench/vectordb"
)

// payloadIndexes are created on every hybrid collection so the dashboard
// can filter on them. Index creation failures are logged, not fatal; the
// collection works without them.
var payloadIndexes = []struct {
	field string
	ftype qdrant.FieldType
}{
	{"recipe_name", qdrant.FieldType_FieldTypeText},
	{"category", qdrant.FieldType_FieldTypeKeyword},
	{"source", qdrant.FieldType_FieldTypeKeyword},
}

// EnsureHybridCollection verifies that a collection with the hybrid schema
// exists and creates it if missing: a named dense vector ("dense", cosine
// distance, size dim) plus a named sparse vector ("sparse") with IDF
// weighting. With recreate set, an existing collection is dropped first.
//
// Safe to call multiple times; an existing collection is left untouched
// unless recreate is requested.
func (c *QdrantClient) EnsureHybridCollection(ctx context.Context, name string, dim uint64, recreate bool) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		if !recreate {
			log.Printf("[Qdrant] Collection '%s' already exists", name)
			return nil
		}

		log.Printf("[Qdrant] Dropping collection '%s' for recreation...", name)
		if err := c.api.DeleteCollection(ctx, name); err != nil {
			return fmt.Errorf("[Qdrant] failed to delete collection '%s': %w", name, err)
		}
		// Give the server a moment to release the name.
		time.Sleep(time.Second)
	}

	log.Printf("[Qdrant] Creating collection '%s' (dense=%dd cosine + sparse IDF)...", name, dim)

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
			denseUsing: {
				Size:     dim,
				Distance: qdrant.Distance_Cosine,
			},
		}),
		SparseVectorsConfig: qdrant.NewSparseVectorsConfig(map[string]*qdrant.SparseVectorParams{
			sparseUsing: {
				Modifier: qdrant.Modifier_Idf.Enum(),
			},
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	for _, idx := range payloadIndexes {
		_, err := c.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: name,
			FieldName:      idx.field,
			FieldType:      idx.ftype.Enum(),
		})
		if err != nil {
			log.Printf("[Qdrant] payload index on '%s' not created: %v", idx.field, err)
		}
	}

	log.Printf("[Qdrant] Created collection '%s' successfully", name)
	return nil
}

// GetCollection retrieves metadata about a collection, decoupled from the
// SDK's protobuf types.
func (c *QdrantClient) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", name, err)
	}

	count, err := c.api.Count(ctx, &qdrant.CountPoints{CollectionName: name})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to count points in '%s': %w", name, err)
	}

	size, distance := extractVectorDetails(info)

	return &vectordb.Collection{
		Name:       name,
		Status:     info.Status.String(),
		Points:     count,
		VectorSize: size,
		Distance:   distance,
	}, nil
}

// ListCollections returns the names of all collections.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	log.Printf("[Qdrant] Found %d collections", len(names))
	return names, nil
}

// Upsert inserts hybrid points in batches to reduce network overhead.
// Safe for large datasets: inserts are split into defaultBatchSize chunks
// and performed sequentially, each waiting for persistence.
func (c *QdrantClient) Upsert(ctx context.Context, collection string, points []vectordb.Point) error {
	if len(points) == 0 {
		return nil
	}

	for start := 0; start < len(points); start += defaultBatchSize {
		end := start + defaultBatchSize
		if end > len(points) {
			end = len(points)
		}

		if err := c.upsertBatch(ctx, collection, points[start:end]); err != nil {
			return fmt.Errorf("[Qdrant] batch upsert failed at [%d:%d]: %w", start, end, err)
		}
		log.Printf("[Qdrant] Inserted batch [%d:%d] (collection=%s)", start, end, collection)
	}

	return nil
}

// upsertBatch sends one Upsert request for a slice of points, converting
// them into PointStructs with named dense and sparse vectors. Wait=true
// ensures data persistence before returning.
func (c *QdrantClient) upsertBatch(ctx context.Context, collection string, batch []vectordb.Point) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, p := range batch {
		vectors := map[string]*qdrant.Vector{
			denseUsing: qdrant.NewVectorDense(p.Dense),
		}
		if p.Sparse != nil {
			vectors[sparseUsing] = qdrant.NewVectorSparse(p.Sparse.Indices, p.Sparse.Values)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectorsMap(vectors),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
		Wait:           &wait,
	}

	if _, err := c.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] upsert failed: %w", err)
	}
	return nil
}

// QueryDense runs a similarity search against the dense vector field.
func (c *QdrantClient) QueryDense(ctx context.Context, collection string, vector []float32, limit int, scoreThreshold *float32) ([]vectordb.Hit, error) {
	if err := validateQueryInput(collection, limit); err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("dense vector cannot be empty")
	}

	lim := uint64(limit)
	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Using:          &denseUsing,
		Limit:          &lim,
		ScoreThreshold: scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
	}

	resp, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] dense query failed: %w", err)
	}
	return parseHits(resp)
}

// QuerySparse runs a similarity search against the sparse vector field.
func (c *QdrantClient) QuerySparse(ctx context.Context, collection string, sparse *vectordb.SparseVector, limit int, scoreThreshold *float32) ([]vectordb.Hit, error) {
	if err := validateQueryInput(collection, limit); err != nil {
		return nil, err
	}
	if sparse == nil || len(sparse.Indices) == 0 {
		return nil, fmt.Errorf("sparse vector cannot be empty")
	}

	lim := uint64(limit)
	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuerySparse(sparse.Indices, sparse.Values),
		Using:          &sparseUsing,
		Limit:          &lim,
		ScoreThreshold: scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
	}

	resp, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] sparse query failed: %w", err)
	}
	return parseHits(resp)
}

// QueryHybrid issues two candidate retrievals (dense and sparse, each
// fetching 3x the requested limit) and asks the server to fuse them with Reciprocal Rank
// Fusion, returning the top-limit points. Fusion happens entirely inside
// Qdrant's query engine.
func (c *QdrantClient) QueryHybrid(ctx context.Context, collection string, dense []float32, sparse *vectordb.SparseVector, limit int) ([]vectordb.Hit, error) {
	if err := validateQueryInput(collection, limit); err != nil {
		return nil, err
	}
	if len(dense) == 0 {
		return nil, fmt.Errorf("dense vector cannot be empty")
	}
	if sparse == nil || len(sparse.Indices) == 0 {
		return nil, fmt.Errorf("sparse vector cannot be empty")
	}

	lim := uint64(limit)
	prefetchLim := uint64(limit * 3)

	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Prefetch: []*qdrant.PrefetchQuery{
			{
				Query: qdrant.NewQuery(dense...),
				Using: &denseUsing,
				Limit: &prefetchLim,
			},
			{
				Query: qdrant.NewQuerySparse(sparse.Indices, sparse.Values),
				Using: &sparseUsing,
				Limit: &prefetchLim,
			},
		},
		Query:       qdrant.NewQueryFusion(qdrant.Fusion_RRF),
		Limit:       &lim,
		WithPayload: qdrant.NewWithPayload(true),
	}

	resp, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] hybrid query failed: %w", err)
	}
	return parseHits(resp)
}

// Delete removes points from a collection by their IDs.
func (c *QdrantClient) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	}

	resp, err := c.api.Delete(ctx, req)
	if err != nil {
		return fmt.Errorf("[Qdrant] delete failed: %w", err)
	}

	log.Printf("[Qdrant] Delete completed (status=%s, collection=%s)", resp.Status.String(), collection)
	return nil
}
