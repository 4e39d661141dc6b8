package evaluator

import (
	"context"
	"fmt"
	"time"

	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/metrics"
	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/tracer"
	"github.com/searchlab/recipebench/vectordb"
)

// topHitsWindow is how many leading hits each result carries for reports.
const topHitsWindow = 5

// Embedder is the slice of the embedding client the evaluator needs.
// Narrow on purpose so unit tests can fake it without HTTP.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) (embedding.EmbeddingResult, error)
	ModelName() string
}

// Evaluator runs individual test cases against the search stack and
// classifies the outcome.
type Evaluator struct {
	embedder Embedder
	db       vectordb.Service
	cfg      *Config
	log      *logger.Logger
	metrics  *metrics.Metrics
	tracer   *tracer.Tracer
}

// EvaluatorParams collects the evaluator's dependencies. Metrics and tracer
// are optional; absence disables instrumentation, nothing else.
type EvaluatorParams struct {
	Embedder Embedder
	DB       vectordb.Service
	Config   *Config
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Tracer   *tracer.Tracer
}

// NewEvaluator constructs an evaluator from its dependencies.
func NewEvaluator(p EvaluatorParams) *Evaluator {
	return &Evaluator{
		embedder: p.Embedder,
		db:       p.DB,
		cfg:      p.Config,
		log:      p.Logger,
		metrics:  p.Metrics,
		tracer:   p.Tracer,
	}
}

// Evaluate embeds the test's query, runs the search, and classifies the
// result.
//
// Collection and mode come from the test case, falling back to the
// configured defaults (mode default: hybrid; unknown modes run dense).
// When the active embedding provider yields no sparse component, sparse and
// hybrid tests degrade to the dense path rather than failing; the executed
// mode is recorded on the result.
//
// Classification applies the first matching rule:
//  1. no expected ids, hits exist: PASSED
//  2. no expected ids, no hits: FAILED
//  3. expected ids, none matched in the window: FAILED
//  4. matched beyond max_rank: WARNING
//  5. matched below min_score: WARNING
//  6. otherwise: PASSED
func (e *Evaluator) Evaluate(ctx context.Context, tc teststore.TestCase) (*Result, error) {
	var span traceSpan.Span
	if e.tracer != nil {
		ctx, span = e.tracer.StartSpan(ctx, "evaluate-test")
		defer span.End()
		e.tracer.SetAttributes(span, map[string]interface{}{
			"test.id":    tc.ID,
			"test.query": tc.Query,
		})
	}

	emb, err := e.embedder.EmbedOne(ctx, tc.Query)
	if err != nil {
		return nil, e.failSpan(span, fmt.Errorf("embedding query for test %s: %w", tc.ID, err))
	}
	if e.metrics != nil {
		e.metrics.IncrementEmbeddingRequests(e.embedder.ModelName())
	}

	mode := resolveMode(tc.SearchMode, emb.Sparse != nil)

	collection := tc.Collection
	if collection == "" {
		collection = e.cfg.DefaultCollection
	}

	req := vectordb.SearchRequest{
		Collection: collection,
		Mode:       mode,
		Dense:      emb.Dense,
		Limit:      e.cfg.Limit,
	}
	if emb.Sparse != nil {
		req.Sparse = &vectordb.SparseVector{
			Indices: emb.Sparse.Indices,
			Values:  emb.Sparse.Values,
		}
	}

	start := time.Now()
	hits, err := e.db.Query(ctx, req)
	if err != nil {
		return nil, e.failSpan(span, fmt.Errorf("search for test %s: %w", tc.ID, err))
	}
	if e.metrics != nil {
		e.metrics.RecordSearchDuration(start, string(mode))
	}

	result := classify(tc, hits)
	result.Mode = string(mode)

	e.log.Debug("test evaluated", nil, map[string]interface{}{
		"test_id": tc.ID,
		"status":  string(result.Status),
		"rank":    result.Rank,
		"mode":    result.Mode,
	})
	if e.metrics != nil {
		e.metrics.IncrementEvaluations(string(result.Status))
	}
	return result, nil
}

// failSpan marks the active span with the error before it is returned.
// Passthrough when tracing is disabled.
func (e *Evaluator) failSpan(span traceSpan.Span, err error) error {
	if e.tracer != nil {
		e.tracer.RecordErrorOnSpan(span, err)
	}
	return err
}

// resolveMode maps the test's declared mode to the one actually executed.
// Default is hybrid; unknown modes run dense. Sparse and hybrid degrade to
// dense when the embedding carries no sparse component.
func resolveMode(declared string, hasSparse bool) vectordb.SearchMode {
	var mode vectordb.SearchMode
	switch declared {
	case "", string(vectordb.ModeHybrid):
		mode = vectordb.ModeHybrid
	case string(vectordb.ModeSparse):
		mode = vectordb.ModeSparse
	case string(vectordb.ModeDense):
		return vectordb.ModeDense
	default:
		return vectordb.ModeDense
	}

	if !hasSparse {
		return vectordb.ModeDense
	}
	return mode
}

// classify applies the status rules to the search window.
func classify(tc teststore.TestCase, hits []vectordb.Hit) *Result {
	result := &Result{
		TestID:   tc.ID,
		TestName: tc.Name,
		Query:    tc.Query,
		TopHits:  summarizeHits(hits),
	}

	expected := tc.ExpectedIDs()
	if len(expected) == 0 {
		if len(hits) > 0 {
			result.Status = StatusPassed
			result.Message = fmt.Sprintf("%d results returned", len(hits))
		} else {
			result.Status = StatusFailed
			result.Message = "no results returned"
		}
		return result
	}

	rank, hit, foundID := findExpected(expected, hits)
	if rank == 0 {
		result.Status = StatusFailed
		result.Message = fmt.Sprintf("expected %v not found in top %d", expected, len(hits))
		return result
	}

	result.Rank = rank
	result.Score = hit.Score
	result.FoundID = foundID

	if rank > tc.MaxRank {
		result.Status = StatusWarning
		result.Message = fmt.Sprintf("rank %d exceeds max rank %d", rank, tc.MaxRank)
		return result
	}
	if float64(hit.Score) < tc.MinScore {
		result.Status = StatusWarning
		result.Message = fmt.Sprintf("score %.3f below min score %.3f", hit.Score, tc.MinScore)
		return result
	}

	result.Status = StatusPassed
	result.Message = fmt.Sprintf("found at rank %d with score %.3f", rank, hit.Score)
	return result
}

// findExpected returns the 1-based rank and hit of the first result whose
// payload id matches any expected id, or rank 0 when none match.
func findExpected(expected []string, hits []vectordb.Hit) (int, vectordb.Hit, string) {
	want := make(map[string]struct{}, len(expected))
	for _, id := range expected {
		want[id] = struct{}{}
	}

	for i, hit := range hits {
		id := vectordb.PayloadID(hit.Payload)
		if id == "" {
			id = hit.ID
		}
		if _, ok := want[id]; ok {
			return i + 1, hit, id
		}
	}
	return 0, vectordb.Hit{}, ""
}

func summarizeHits(hits []vectordb.Hit) []HitSummary {
	n := len(hits)
	if n > topHitsWindow {
		n = topHitsWindow
	}
	if n == 0 {
		return nil
	}

	out := make([]HitSummary, 0, n)
	for i := 0; i < n; i++ {
		id := vectordb.PayloadID(hits[i].Payload)
		if id == "" {
			id = hits[i].ID
		}
		out = append(out, HitSummary{
			Rank:  i + 1,
			ID:    id,
			Name:  vectordb.PayloadName(hits[i].Payload),
			Score: hits[i].Score,
		})
	}
	return out
}
