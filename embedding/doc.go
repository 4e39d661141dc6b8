// Package embedding provides a unified API for computing dense and sparse
// text embeddings through one of two backends.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides all
// backend details: endpoints, request formats, batching, and response
// parsing.
//
//	client, err := embedding.NewClient(embedding.NewConfig())
//	result, err := client.EmbedOne(ctx, "рецепт на основе картофеля")
//
// Exactly one backend is selected at construction time via
// EMBEDDING_PROVIDER; there is no runtime switching.
//
//   - "openai": a hosted OpenAI-compatible embeddings API. Dense-only,
//     1536 dimensions, model text-embedding-3-small. All input strings go
//     upstream in a single call.
//
//   - "bge-m3" (default): a self-hosted BGE-M3 multilingual service.
//     Dense (1024 dimensions) plus sparse term weights. Requests are split
//     into batches of 20 texts; for each batch an ordered list of known
//     request shapes and response schemas is probed, and the first match
//     wins. A 2xx response no schema recognizes surfaces a
//     MalformedResponseError carrying the attempted shapes and a body
//     snippet.
//
// # Configuration
//
// Environment variables (see NewConfig): EMBEDDING_PROVIDER,
// OPENAI_API_KEY, OPENAI_BASE_URL, BGE_M3_URL, BGE_M3_PORT,
// BGE_M3_ENDPOINT, BGE_M3_TIMEOUT, HTTP_PROXY/HTTPS_PROXY.
//
// An unknown provider name or a missing credential for the selected
// provider is a fail-fast configuration error at construction.
//
// # Error handling
//
// Transport failures and non-2xx responses propagate to the caller
// unchanged (after the BGE-M3 shape probing is exhausted). Calls are never
// retried here; retry policy belongs to the caller.
//
// # Dependency injection
//
// FXModule provides *Config and *Client and closes the client on shutdown.
package embedding
