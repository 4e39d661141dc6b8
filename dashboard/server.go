package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/searchlab/recipebench/evaluator"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/tracer"
	"github.com/searchlab/recipebench/vectordb"
)

// Server is the HTTP dashboard: test case management, ad-hoc search, and
// batch test runs over a JSON API.
type Server struct {
	engine *gin.Engine
	http   *http.Server

	store    *teststore.Store
	eval     *evaluator.Evaluator
	embedder evaluator.Embedder
	db       vectordb.Service
	cfg      *Config
	evalCfg  *evaluator.Config
	log      *logger.Logger
}

// ServerParams collects the server's dependencies.
type ServerParams struct {
	Config    *Config
	EvalCfg   *evaluator.Config
	Store     *teststore.Store
	Evaluator *evaluator.Evaluator
	Embedder  evaluator.Embedder
	DB        vectordb.Service
	Logger    *logger.Logger
	Tracer    *tracer.Tracer
}

// NewServer builds the gin engine, wires middleware and routes, and
// prepares the HTTP server without starting it. Startup happens through
// the fx lifecycle or an explicit Start call.
func NewServer(p ServerParams) *Server {
	if p.Config.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		loggingMiddleware(p.Logger),
		traceContextMiddleware(p.Tracer),
	)

	s := &Server{
		engine:   engine,
		store:    p.Store,
		eval:     p.Evaluator,
		embedder: p.Embedder,
		db:       p.DB,
		cfg:      p.Config,
		evalCfg:  p.EvalCfg,
		log:      p.Logger,
	}
	s.registerRoutes()

	s.http = &http.Server{
		Addr:    p.Config.Addr,
		Handler: engine,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.GET("/tests", s.handleListTests)
		api.POST("/tests", s.handleCreateTest)
		api.PUT("/tests/:id", s.handleUpdateTest)
		api.DELETE("/tests/:id", s.handleDeleteTest)
		api.POST("/tests/run", s.handleRunTests)
		api.POST("/search", s.handleSearch)
		api.GET("/collections", s.handleListCollections)
	}
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info("dashboard listening", nil, map[string]interface{}{
		"addr": s.http.Addr,
	})
	err := s.http.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
