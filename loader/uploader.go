package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/vectordb"
)

// embedBatchSize bounds how many recipes are embedded per upstream call.
const embedBatchSize = 20

// Uploader embeds a recipe corpus and writes it into a collection.
type Uploader struct {
	embedder *embedding.Client
	db       vectordb.Service
	log      *logger.Logger
}

// NewUploader constructs an uploader from its dependencies.
func NewUploader(embedder *embedding.Client, db vectordb.Service, log *logger.Logger) *Uploader {
	return &Uploader{embedder: embedder, db: db, log: log}
}

// LoadCorpus reads and validates a corpus file.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read corpus %s: %w", path, err)
	}

	var corpus Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("loader: failed to parse corpus %s: %w", path, err)
	}

	for i := range corpus.Recipes {
		if err := corpus.Recipes[i].Validate(); err != nil {
			return nil, fmt.Errorf("loader: invalid corpus %s: %w", path, err)
		}
	}
	return &corpus, nil
}

// Upload embeds all recipes and upserts them into the collection. Recipes
// are embedded in batches; each recipe becomes one point whose UUID is
// derived deterministically from the recipe id, so re-uploading a corpus
// overwrites instead of duplicating.
func (u *Uploader) Upload(ctx context.Context, collection string, corpus *Corpus) error {
	if len(corpus.Recipes) == 0 {
		return fmt.Errorf("loader: corpus contains no recipes")
	}

	u.log.Info("uploading corpus", nil, map[string]interface{}{
		"collection": collection,
		"recipes":    len(corpus.Recipes),
		"model":      u.embedder.ModelName(),
	})

	for start := 0; start < len(corpus.Recipes); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(corpus.Recipes) {
			end = len(corpus.Recipes)
		}
		batch := corpus.Recipes[start:end]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].EmbeddingText()
		}

		results, err := u.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("loader: embedding batch [%d:%d]: %w", start, end, err)
		}
		if len(results) != len(batch) {
			return fmt.Errorf("loader: embedding batch [%d:%d]: got %d results for %d recipes", start, end, len(results), len(batch))
		}

		points := make([]vectordb.Point, len(batch))
		for i := range batch {
			points[i] = vectordb.Point{
				ID:      PointID(batch[i].ID),
				Dense:   results[i].Dense,
				Payload: batch[i].Payload(),
			}
			if results[i].Sparse != nil {
				points[i].Sparse = &vectordb.SparseVector{
					Indices: results[i].Sparse.Indices,
					Values:  results[i].Sparse.Values,
				}
			}
		}

		if err := u.db.Upsert(ctx, collection, points); err != nil {
			return fmt.Errorf("loader: upserting batch [%d:%d]: %w", start, end, err)
		}

		u.log.Debug("batch uploaded", nil, map[string]interface{}{
			"from": start,
			"to":   end,
		})
	}

	u.log.Info("corpus uploaded", nil, map[string]interface{}{
		"collection": collection,
		"recipes":    len(corpus.Recipes),
	})
	return nil
}

// PointID derives the stable UUID used as the vector database point id for
// a recipe. Qdrant accepts only numeric or UUID point ids, so the
// human-readable recipe id lives in the payload and this name-based UUID
// identifies the point.
func PointID(recipeID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(recipeID)).String()
}
