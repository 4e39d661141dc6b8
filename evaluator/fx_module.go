package evaluator

import (
	"go.uber.org/fx"

	"github.com/searchlab/recipebench/embedding"
	"github.com/searchlab/recipebench/logger"
	"github.com/searchlab/recipebench/metrics"
	"github.com/searchlab/recipebench/tracer"
	"github.com/searchlab/recipebench/vectordb"
)

// FXModule defines the Fx module for the evaluator.
//
// The module provides NewConfig and an evaluator wired from the containers'
// embedding client, vectordb service, logger, metrics, and tracer.
//
// Usage:
//
//	app := fx.New(
//	    evaluator.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("evaluator",
	fx.Provide(
		NewConfig,
		func(emb *embedding.Client, db vectordb.Service, cfg *Config, log *logger.Logger, m *metrics.Metrics, tr *tracer.Tracer) *Evaluator {
			return NewEvaluator(EvaluatorParams{
				Embedder: emb,
				DB:       db,
				Config:   cfg,
				Logger:   log,
				Metrics:  m,
				Tracer:   tr,
			})
		},
	),
)
