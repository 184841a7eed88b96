package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts and has the same length.
	//
	// Embedders are stateless per call and perform no caching or retries;
	// batching and backoff policy belong to the caller. Failures are
	// classified into ErrRateLimited, ErrUnavailable or ErrInvalidInput.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces free-form text from an assembled prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText runs one completion for the given prompt using the
	// provider's configured model and temperature.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
