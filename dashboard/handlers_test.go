package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/evaluator"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/vectordb"
)

type fakeEmbedder struct {
	sparse bool
	err    error
}

func (f *fakeEmbedder) EmbedOne(context.Context, string) (embedding.EmbeddingResult, error) {
	if f.err != nil {
		return embedding.EmbeddingResult{}, f.err
	}
	res := embedding.EmbeddingResult{Dense: []float32{0.1, 0.2}}
	if f.sparse {
		res.Sparse = &embedding.SparseVector{Indices: []uint32{1}, Values: []float32{0.5}}
	}
	return res, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake-model" }

type fakeDB struct {
	hits    []vectordb.Hit
	lastReq vectordb.SearchRequest
}

func (f *fakeDB) Query(_ context.Context, req vectordb.SearchRequest) ([]vectordb.Hit, error) {
	f.lastReq = req
	return f.hits, nil
}

func (f *fakeDB) Upsert(context.Context, string, []vectordb.Point) error { return nil }
func (f *fakeDB) EnsureCollection(context.Context, string, uint64, bool) error {
	return nil
}
func (f *fakeDB) GetCollection(context.Context, string) (*vectordb.Collection, error) {
	return &vectordb.Collection{Name: "recipes", Status: "Green", Points: 2}, nil
}
func (f *fakeDB) ListCollections(context.Context) ([]string, error) {
	return []string{"recipes"}, nil
}
func (f *fakeDB) Delete(context.Context, string, []string) error { return nil }

func newTestServer(t *testing.T, db *fakeDB) (*Server, *teststore.Store) {
	t.Helper()

	store, err := teststore.NewStore(&teststore.Config{
		Path: filepath.Join(t.TempDir(), "tests.json"),
	})
	require.NoError(t, err)

	log := logger.NewLoggerClient(logger.Config{Level: logger.Error, ServiceName: "test"})
	emb := &fakeEmbedder{sparse: true}
	evalCfg := &evaluator.Config{DefaultCollection: "recipes", Limit: 10}

	eval := evaluator.NewEvaluator(evaluator.EvaluatorParams{
		Embedder: emb,
		DB:       db,
		Config:   evalCfg,
		Logger:   log,
	})

	s := NewServer(ServerParams{
		Config:    &Config{Addr: ":0", ReleaseMode: true},
		EvalCfg:   evalCfg,
		Store:     store,
		Evaluator: eval,
		Embedder:  emb,
		DB:        db,
		Logger:    log,
	})
	return s, store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, &fakeDB{})
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTestCRUDOverHTTP(t *testing.T) {
	s, _ := newTestServer(t, &fakeDB{})

	// Create
	w := doJSON(t, s, http.MethodPost, "/api/tests", map[string]any{
		"id":                 "test_1",
		"name":               "potato",
		"query":              "жареная картошка",
		"expected_result_id": "potato_1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate id conflicts
	w = doJSON(t, s, http.MethodPost, "/api/tests", map[string]any{
		"id":    "test_1",
		"query": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	// Missing query is a bad request
	w = doJSON(t, s, http.MethodPost, "/api/tests", map[string]any{"name": "no query"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// List
	w = doJSON(t, s, http.MethodGet, "/api/tests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Count int                  `json:"count"`
		Tests []teststore.TestCase `json:"tests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Count)
	assert.Equal(t, 3, listResp.Tests[0].MaxRank) // default applied

	// Update
	w = doJSON(t, s, http.MethodPut, "/api/tests/test_1", map[string]any{"max_rank": 5})
	require.Equal(t, http.StatusOK, w.Code)
	var updated teststore.TestCase
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 5, updated.MaxRank)

	// Update of unknown id
	w = doJSON(t, s, http.MethodPut, "/api/tests/nope", map[string]any{"max_rank": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Delete
	w = doJSON(t, s, http.MethodDelete, "/api/tests/test_1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodDelete, "/api/tests/test_1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchEndpoint(t *testing.T) {
	db := &fakeDB{hits: []vectordb.Hit{
		{
			ID:    "00000000-0000-0000-0000-000000000001",
			Score: 0.91,
			Payload: map[string]any{
				"recipe_id":   "potato_1",
				"recipe_name": "Жареная картошка",
			},
		},
	}}
	s, _ := newTestServer(t, db)

	w := doJSON(t, s, http.MethodPost, "/api/search", map[string]any{
		"query": "картошка",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Mode       string `json:"mode"`
		Collection string `json:"collection"`
		Hits       []struct {
			Rank  int     `json:"rank"`
			ID    string  `json:"id"`
			Name  string  `json:"name"`
			Score float32 `json:"score"`
		} `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hybrid", resp.Mode)
	assert.Equal(t, "recipes", resp.Collection)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, "potato_1", resp.Hits[0].ID)
	assert.Equal(t, 1, resp.Hits[0].Rank)

	// Mode and limit flow into the database request.
	w = doJSON(t, s, http.MethodPost, "/api/search", map[string]any{
		"query": "картошка",
		"mode":  "dense",
		"limit": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, vectordb.ModeDense, db.lastReq.Mode)
	assert.Equal(t, 3, db.lastReq.Limit)

	// Missing query is rejected.
	w = doJSON(t, s, http.MethodPost, "/api/search", map[string]any{"mode": "dense"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunEndpoint(t *testing.T) {
	db := &fakeDB{hits: []vectordb.Hit{
		{
			ID:      "00000000-0000-0000-0000-000000000001",
			Score:   0.91,
			Payload: map[string]any{"recipe_id": "potato_1"},
		},
	}}
	s, store := newTestServer(t, db)

	_, err := store.Add(teststore.TestCase{
		ID: "test_1", Name: "pass", Query: "q", ExpectedResultID: "potato_1",
	})
	require.NoError(t, err)
	_, err = store.Add(teststore.TestCase{
		ID: "test_2", Name: "fail", Query: "q", ExpectedResultID: "missing",
	})
	require.NoError(t, err)

	w := doJSON(t, s, http.MethodPost, "/api/tests/run", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report evaluator.RunReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)

	// Narrow the run to one test.
	w = doJSON(t, s, http.MethodPost, "/api/tests/run", map[string]any{"ids": []string{"test_1"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.Total)
	assert.Equal(t, "test_1", report.Results[0].TestID)
}

func TestListCollectionsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &fakeDB{})

	w := doJSON(t, s, http.MethodGet, "/api/collections", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Collections []string             `json:"collections"`
		Default     *vectordb.Collection `json:"default"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"recipes"}, resp.Collections)
	require.NotNil(t, resp.Default)
	assert.Equal(t, "recipes", resp.Default.Name)
}

func TestRequestIDHeader(t *testing.T) {
	s, _ := newTestServer(t, &fakeDB{})
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}
