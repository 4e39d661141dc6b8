package dashboard

import (
	"context"

	"go.uber.org/fx"

	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/evaluator"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/teststore"
	"github.com/searchlab/recipebench/tracer"
	"github.com/searchlab/recipebench/vectordb"
)

// FXModule defines the Fx module for the dashboard HTTP server.
//
// The module provides NewConfig and a fully wired Server, and registers
// lifecycle hooks that start the listener in a goroutine on start and shut
// it down gracefully on stop.
var FXModule = fx.Module("dashboard",
	fx.Provide(
		NewConfig,
		func(
			cfg *Config,
			evalCfg *evaluator.Config,
			store *teststore.Store,
			eval *evaluator.Evaluator,
			emb *embedding.Client,
			db vectordb.Service,
			log *logger.Logger,
			tr *tracer.Tracer,
		) *Server {
			return NewServer(ServerParams{
				Config:    cfg,
				EvalCfg:   evalCfg,
				Store:     store,
				Evaluator: eval,
				Embedder:  emb,
				DB:        db,
				Logger:    log,
				Tracer:    tr,
			})
		},
	),
	fx.Invoke(RegisterDashboardLifecycle),
)

// RegisterDashboardLifecycle starts and stops the HTTP server with the
// application lifecycle.
func RegisterDashboardLifecycle(lc fx.Lifecycle, s *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := s.Start(); err != nil {
					log.Error("dashboard server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down dashboard server", nil, nil)
			return s.http.Shutdown(ctx)
		},
	})
}
