package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client,
// providing application-level operations for hybrid-search collections:
// schema management, batched upserts, and dense/sparse/hybrid queries.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Manage hybrid collections (dense + sparse vector fields).
//   • Insert points and run similarity queries in all three modes.
//   • Offer a safe API suitable for Fx dependency injection.
//

// QdrantClient wraps the official Qdrant Go client.
type QdrantClient struct {
	api     *qdrant.Client
	cfg     *Config
	started bool
}

const defaultBatchSize = 200 // chunk size for batch upserts

// Named vector fields of a hybrid collection. Package-level vars because
// the SDK request structs take *string.
var (
	denseUsing  = "dense"
	sparseUsing = "sparse"
)

// NewQdrantClient constructs a client and validates connectivity via a
// health check. The SDK's gRPC connections are lightweight, so failing
// fast here is cheap and catches bad endpoints at startup.
func NewQdrantClient(cfg *Config) (*QdrantClient, error) {
	host, port, useTLS, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	log.Printf("[Qdrant] Connecting to endpoint: %s:%d (tls=%t)", host, port, useTLS)

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   host,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 useTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := &QdrantClient{
		api:     client,
		cfg:     cfg,
		started: true,
	}

	if err := qc.healthCheck(); err != nil {
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return qc, nil
}

// healthCheck verifies the availability of the Qdrant service.
// Lightweight and fast; used during startup and readiness probes.
func (c *QdrantClient) healthCheck() error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s)", resp.Title, resp.Version)
	return nil
}

// DefaultCollection returns the configured default collection name.
func (c *QdrantClient) DefaultCollection() string {
	return c.cfg.DefaultCollection
}

// Client returns the underlying Qdrant SDK client for direct access to
// low-level operations.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close gracefully shuts down the Qdrant client.
func (c *QdrantClient) Close() error {
	if !c.started {
		return nil
	}

	log.Println("[Qdrant] closing client")
	return c.api.Close()
}
