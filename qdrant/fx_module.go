package qdrant

import (
	"context"
	"log"
	"sync"

	"go.uber.org/fx"

	"github.com/searchlab/recipebench/vectordb"
)

// FXModule defines the Fx module for the Qdrant client.
//
// This module integrates the Qdrant client into an Fx-based application by
// providing the config and client factories and registering lifecycle hooks.
//
// The module:
//  1. Provides NewConfig and NewQdrantClient to the dependency injection
//     container.
//  2. Provides NewServiceAdapter bound to the vectordb.Service interface, so
//     application components depend on the abstraction rather than Qdrant.
//  3. Invokes RegisterQdrantLifecycle to handle shutdown of the client.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewConfig,
		NewQdrantClient,
		fx.Annotate(
			NewServiceAdapter,
			fx.As(new(vectordb.Service)),
		),
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle handles startup/shutdown of the Qdrant client.
// It ensures proper resource cleanup and logging.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("[Qdrant] client initialized successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			once.Do(func() {
				client.Close()
				log.Println("[Qdrant] client connection closed")
			})
			return nil
		},
	})
}
