package dashboard

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/vectordb"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTests(c *gin.Context) {
	tests := s.store.List()
	c.JSON(http.StatusOK, gin.H{
		"tests": tests,
		"count": len(tests),
	})
}

func (s *Server) handleCreateTest(c *gin.Context) {
	var tc teststore.TestCase
	if err := c.ShouldBindJSON(&tc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid test case: %v", err)})
		return
	}
	if tc.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	ok, err := s.store.Add(tc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("test with id %q already exists", tc.ID)})
		return
	}

	tests := s.store.List()
	c.JSON(http.StatusCreated, gin.H{"tests": tests, "count": len(tests)})
}

func (s *Server) handleUpdateTest(c *gin.Context) {
	id := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid update: %v", err)})
		return
	}

	ok, err := s.store.Update(id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("test %q not found", id)})
		return
	}

	c.JSON(http.StatusOK, s.store.Get(id))
}

func (s *Server) handleDeleteTest(c *gin.Context) {
	id := c.Param("id")

	ok, err := s.store.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("test %q not found", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// runRequest optionally narrows a batch run to specific test ids.
type runRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleRunTests(c *gin.Context) {
	var req runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid run request: %v", err)})
			return
		}
	}

	tests := s.store.List()
	if len(req.IDs) > 0 {
		want := make(map[string]struct{}, len(req.IDs))
		for _, id := range req.IDs {
			want[id] = struct{}{}
		}
		filtered := tests[:0]
		for _, tc := range tests {
			if _, ok := want[tc.ID]; ok {
				filtered = append(filtered, tc)
			}
		}
		tests = filtered
	}

	if len(tests) == 0 {
		c.JSON(http.StatusOK, gin.H{"results": []any{}, "summary": gin.H{"total": 0}})
		return
	}

	report := s.eval.Run(c.Request.Context(), tests)
	c.JSON(http.StatusOK, report)
}

// searchRequest is an ad-hoc query from the dashboard UI.
type searchRequest struct {
	Query      string `json:"query" binding:"required"`
	Mode       string `json:"mode"`
	Collection string `json:"collection"`
	Limit      int    `json:"limit"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid search request: %v", err)})
		return
	}

	if req.Limit <= 0 {
		req.Limit = s.evalCfg.Limit
	}
	if req.Collection == "" {
		req.Collection = s.evalCfg.DefaultCollection
	}

	emb, err := s.embedder.EmbedOne(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("embedding failed: %v", err)})
		return
	}

	mode := resolveSearchMode(req.Mode, emb.Sparse != nil)

	dbReq := vectordb.SearchRequest{
		Collection: req.Collection,
		Mode:       mode,
		Dense:      emb.Dense,
		Limit:      req.Limit,
	}
	if emb.Sparse != nil {
		dbReq.Sparse = &vectordb.SparseVector{
			Indices: emb.Sparse.Indices,
			Values:  emb.Sparse.Values,
		}
	}

	hits, err := s.db.Query(c.Request.Context(), dbReq)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("search failed: %v", err)})
		return
	}

	type hitView struct {
		Rank    int            `json:"rank"`
		ID      string         `json:"id"`
		Name    string         `json:"name,omitempty"`
		Score   float32        `json:"score"`
		Payload map[string]any `json:"payload,omitempty"`
	}

	views := make([]hitView, 0, len(hits))
	for i, h := range hits {
		id := vectordb.PayloadID(h.Payload)
		if id == "" {
			id = h.ID
		}
		views = append(views, hitView{
			Rank:    i + 1,
			ID:      id,
			Name:    vectordb.PayloadName(h.Payload),
			Score:   h.Score,
			Payload: h.Payload,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"query":      req.Query,
		"mode":       string(mode),
		"collection": req.Collection,
		"model":      s.embedder.ModelName(),
		"hits":       views,
	})
}

func (s *Server) handleListCollections(c *gin.Context) {
	names, err := s.db.ListCollections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("listing collections failed: %v", err)})
		return
	}

	resp := gin.H{"collections": names}
	if info, err := s.db.GetCollection(c.Request.Context(), s.evalCfg.DefaultCollection); err == nil && info != nil {
		resp["default"] = info
	}

	c.JSON(http.StatusOK, resp)
}

// resolveSearchMode mirrors the evaluator's mode rules for ad-hoc queries:
// default hybrid, unknown modes run dense, sparse/hybrid degrade to dense
// when the embedding has no sparse component.
func resolveSearchMode(declared string, hasSparse bool) vectordb.SearchMode {
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
