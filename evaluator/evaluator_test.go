package evaluator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/tracer"
	"github.com/searchlab/recipebench/vectordb"
)

type fakeEmbedder struct {
	result embedding.EmbeddingResult
	err    error
}

func (f *fakeEmbedder) EmbedOne(_ context.Context, _ string) (embedding.EmbeddingResult, error) {
	return f.result, f.err
}

func (f *fakeEmbedder) ModelName() string { return "fake-model" }

type fakeDB struct {
	hits    []vectordb.Hit
	err     error
	lastReq vectordb.SearchRequest
}

func (f *fakeDB) Query(_ context.Context, req vectordb.SearchRequest) ([]vectordb.Hit, error) {
	f.lastReq = req
	return f.hits, f.err
}

func (f *fakeDB) Upsert(context.Context, string, []vectordb.Point) error { return nil }
func (f *fakeDB) EnsureCollection(context.Context, string, uint64, bool) error {
	return nil
}
func (f *fakeDB) GetCollection(context.Context, string) (*vectordb.Collection, error) {
	return nil, nil
}
func (f *fakeDB) ListCollections(context.Context) ([]string, error) { return nil, nil }
func (f *fakeDB) Delete(context.Context, string, []string) error    { return nil }

func hybridEmbedding() embedding.EmbeddingResult {
	return embedding.EmbeddingResult{
		Dense:  []float32{0.1, 0.2},
		Sparse: &embedding.SparseVector{Indices: []uint32{1}, Values: []float32{0.5}},
	}
}

func denseOnlyEmbedding() embedding.EmbeddingResult {
	return embedding.EmbeddingResult{Dense: []float32{0.1, 0.2}}
}

func hit(id string, score float32) vectordb.Hit {
	return vectordb.Hit{
		ID:    "00000000-0000-0000-0000-000000000001",
		Score: score,
		Payload: map[string]any{
			"recipe_id":   id,
			"recipe_name": "name of " + id,
		},
	}
}

func newTestEvaluator(emb Embedder, db vectordb.Service) *Evaluator {
	return NewEvaluator(EvaluatorParams{
		Embedder: emb,
		DB:       db,
		Config:   &Config{DefaultCollection: "recipes", Limit: 10},
		Logger:   logger.NewLoggerClient(logger.Config{Level: logger.Error, ServiceName: "test"}),
	})
}

func TestEvaluateClassification(t *testing.T) {
	tests := []struct {
		name        string
		tc          teststore.TestCase
		hits        []vectordb.Hit
		wantStatus  Status
		wantRank    int
		wantMessage string
	}{
		{
			name:       "no expectations with hits passes",
			tc:         teststore.TestCase{ID: "t1", MaxRank: 3, MinScore: 0.3},
			hits:       []vectordb.Hit{hit("a", 0.9)},
			wantStatus: StatusPassed,
		},
		{
			name:        "no expectations without hits fails",
			tc:          teststore.TestCase{ID: "t1", MaxRank: 3, MinScore: 0.3},
			hits:        nil,
			wantStatus:  StatusFailed,
			wantMessage: "no results returned",
		},
		{
			name:        "expected id absent fails",
			tc:          teststore.TestCase{ID: "t1", ExpectedResultID: "missing", MaxRank: 3, MinScore: 0.3},
			hits:        []vectordb.Hit{hit("a", 0.9), hit("b", 0.8)},
			wantStatus:  StatusFailed,
			wantMessage: "not found",
		},
		{
			name:        "rank beyond max warns",
			tc:          teststore.TestCase{ID: "t1", ExpectedResultID: "c", MaxRank: 2, MinScore: 0.3},
			hits:        []vectordb.Hit{hit("a", 0.9), hit("b", 0.8), hit("c", 0.7)},
			wantStatus:  StatusWarning,
			wantRank:    3,
			wantMessage: "rank 3 exceeds max rank 2",
		},
		{
			name:        "low score warns",
			tc:          teststore.TestCase{ID: "t1", ExpectedResultID: "a", MaxRank: 3, MinScore: 0.5},
			hits:        []vectordb.Hit{hit("a", 0.2)},
			wantStatus:  StatusWarning,
			wantRank:    1,
			wantMessage: "below min score",
		},
		{
			name:       "rank check precedes score check",
			tc:         teststore.TestCase{ID: "t1", ExpectedResultID: "c", MaxRank: 1, MinScore: 0.9},
			hits:       []vectordb.Hit{hit("a", 0.95), hit("b", 0.9), hit("c", 0.1)},
			wantStatus: StatusWarning,
			wantRank:   3,
			// Both thresholds are violated; the rank message must win.
			wantMessage: "rank 3 exceeds max rank 1",
		},
		{
			name:       "within thresholds passes",
			tc:         teststore.TestCase{ID: "t1", ExpectedResultID: "b", MaxRank: 3, MinScore: 0.3},
			hits:       []vectordb.Hit{hit("a", 0.9), hit("b", 0.8)},
			wantStatus: StatusPassed,
			wantRank:   2,
		},
		{
			name: "any of plural expected ids matches",
			tc: teststore.TestCase{
				ID: "t1", ExpectedResultIDs: []string{"x", "b"}, MaxRank: 3, MinScore: 0.3,
			},
			hits:       []vectordb.Hit{hit("a", 0.9), hit("b", 0.8)},
			wantStatus: StatusPassed,
			wantRank:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{hits: tt.hits}
			e := newTestEvaluator(&fakeEmbedder{result: hybridEmbedding()}, db)

			result, err := e.Evaluate(context.Background(), tt.tc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantRank, result.Rank)
			if tt.wantMessage != "" {
				assert.Contains(t, result.Message, tt.wantMessage)
			}
		})
	}
}

func TestEvaluateModeResolution(t *testing.T) {
	tests := []struct {
		name      string
		declared  string
		embedding embedding.EmbeddingResult
		wantMode  vectordb.SearchMode
	}{
		{"default is hybrid", "", hybridEmbedding(), vectordb.ModeHybrid},
		{"explicit hybrid", "hybrid", hybridEmbedding(), vectordb.ModeHybrid},
		{"explicit sparse", "sparse", hybridEmbedding(), vectordb.ModeSparse},
		{"explicit dense", "dense", hybridEmbedding(), vectordb.ModeDense},
		{"unknown mode runs dense", "semantic", hybridEmbedding(), vectordb.ModeDense},
		{"hybrid degrades without sparse", "hybrid", denseOnlyEmbedding(), vectordb.ModeDense},
		{"sparse degrades without sparse", "sparse", denseOnlyEmbedding(), vectordb.ModeDense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeDB{hits: []vectordb.Hit{hit("a", 0.9)}}
			e := newTestEvaluator(&fakeEmbedder{result: tt.embedding}, db)

			result, err := e.Evaluate(context.Background(), teststore.TestCase{
				ID: "t1", SearchMode: tt.declared, MaxRank: 3, MinScore: 0.3,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, db.lastReq.Mode)
			assert.Equal(t, string(tt.wantMode), result.Mode)
		})
	}
}

func TestEvaluateSparseFallbackMatchesDense(t *testing.T) {
	// A dense-only embedding must produce the identical search request
	// whether the test declares sparse mode or dense mode.
	runReq := func(declared string) vectordb.SearchRequest {
		db := &fakeDB{hits: []vectordb.Hit{hit("a", 0.9)}}
		e := newTestEvaluator(&fakeEmbedder{result: denseOnlyEmbedding()}, db)
		_, err := e.Evaluate(context.Background(), teststore.TestCase{
			ID: "t1", SearchMode: declared, MaxRank: 3, MinScore: 0.3,
		})
		require.NoError(t, err)
		return db.lastReq
	}

	assert.Equal(t, runReq("dense"), runReq("sparse"))
}

func TestEvaluateCollectionOverride(t *testing.T) {
	db := &fakeDB{hits: []vectordb.Hit{hit("a", 0.9)}}
	e := newTestEvaluator(&fakeEmbedder{result: hybridEmbedding()}, db)

	_, err := e.Evaluate(context.Background(), teststore.TestCase{
		ID: "t1", Collection: "special", MaxRank: 3, MinScore: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "special", db.lastReq.Collection)

	_, err = e.Evaluate(context.Background(), teststore.TestCase{
		ID: "t2", MaxRank: 3, MinScore: 0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "recipes", db.lastReq.Collection)
}

func TestEvaluateTopHitsWindow(t *testing.T) {
	hits := []vectordb.Hit{
		hit("a", 0.9), hit("b", 0.8), hit("c", 0.7),
		hit("d", 0.6), hit("e", 0.5), hit("f", 0.4), hit("g", 0.3),
	}
	db := &fakeDB{hits: hits}
	e := newTestEvaluator(&fakeEmbedder{result: hybridEmbedding()}, db)

	result, err := e.Evaluate(context.Background(), teststore.TestCase{
		ID: "t1", ExpectedResultID: "a", MaxRank: 3, MinScore: 0.3,
	})
	require.NoError(t, err)
	require.Len(t, result.TopHits, 5)
	assert.Equal(t, "a", result.TopHits[0].ID)
	assert.Equal(t, "name of a", result.TopHits[0].Name)
	assert.Equal(t, 5, result.TopHits[4].Rank)
}

func TestEvaluateRecordsErrorOnSpan(t *testing.T) {
	log := logger.NewLoggerClient(logger.Config{Level: logger.Error, ServiceName: "test"})
	tr := tracer.NewClient(tracer.Config{ServiceName: "test", AppEnv: "test"}, log)

	tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok)

	tests := []struct {
		name     string
		embedder *fakeEmbedder
		db       *fakeDB
		wantMsg  string
	}{
		{
			name:     "embedding failure",
			embedder: &fakeEmbedder{err: errors.New("embedder down")},
			db:       &fakeDB{},
			wantMsg:  "embedder down",
		},
		{
			name:     "search failure",
			embedder: &fakeEmbedder{result: hybridEmbedding()},
			db:       &fakeDB{err: errors.New("qdrant down")},
			wantMsg:  "qdrant down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp.RegisterSpanProcessor(recorder)

			e := NewEvaluator(EvaluatorParams{
				Embedder: tt.embedder,
				DB:       tt.db,
				Config:   &Config{DefaultCollection: "recipes", Limit: 10},
				Logger:   log,
				Tracer:   tr,
			})

			_, err := e.Evaluate(context.Background(), teststore.TestCase{ID: "t1", Query: "q"})
			require.Error(t, err)

			spans := recorder.Ended()
			require.NotEmpty(t, spans)
			last := spans[len(spans)-1]
			assert.Equal(t, "evaluate-test", last.Name())
			assert.Equal(t, codes.Error, last.Status().Code)
			assert.Contains(t, last.Status().Description, tt.wantMsg)
		})
	}
}

func TestRunAggregation(t *testing.T) {
	db := &fakeDB{hits: []vectordb.Hit{hit("a", 0.9), hit("b", 0.2)}}
	e := newTestEvaluator(&fakeEmbedder{result: hybridEmbedding()}, db)

	tests := []teststore.TestCase{
		{ID: "t1", Name: "pass", ExpectedResultID: "a", MaxRank: 3, MinScore: 0.3},
		{ID: "t2", Name: "warn", ExpectedResultID: "b", MaxRank: 3, MinScore: 0.3},
		{ID: "t3", Name: "fail", ExpectedResultID: "zzz", MaxRank: 3, MinScore: 0.3},
		{ID: "t4", Name: "pass2", MaxRank: 3, MinScore: 0.3},
	}

	report := e.Run(context.Background(), tests)
	require.Len(t, report.Results, 4)

	// List order preserved
	assert.Equal(t, "t1", report.Results[0].TestID)
	assert.Equal(t, "t3", report.Results[2].TestID)

	assert.Equal(t, 4, report.Summary.Total)
	assert.Equal(t, 2, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Warnings)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.InDelta(t, 50.0, report.Summary.SuccessRate, 0.001)
}

func TestRunRecordsErrorsAsFailed(t *testing.T) {
	embErr := errors.New("upstream exploded")
	e := newTestEvaluator(&fakeEmbedder{err: embErr}, &fakeDB{})

	report := e.Run(context.Background(), []teststore.TestCase{
		{ID: "t1", Name: "broken", Query: "q", MaxRank: 3, MinScore: 0.3},
	})

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusFailed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Message, "upstream exploded")
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestWriteTextReport(t *testing.T) {
	report := &RunReport{
		Results: []Result{
			{TestID: "t1", TestName: "pass", Status: StatusPassed, Mode: "hybrid", Message: "found at rank 1 with score 0.900"},
			{TestID: "t2", TestName: "fail", Status: StatusFailed, Mode: "dense", Message: "no results returned"},
		},
		Summary: Summary{Total: 2, Passed: 1, Failed: 1, SuccessRate: 50},
	}

	var sb strings.Builder
	report.WriteText(&sb)
	out := sb.String()

	assert.Contains(t, out, "[PASSED] pass")
	assert.Contains(t, out, "[FAILED] fail")
	assert.Contains(t, out, "Success rate: 50.0%")
	assert.True(t, report.Failed())
}
