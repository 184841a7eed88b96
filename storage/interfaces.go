package storage

import (
	"context"

	"github.com/malisevdinoglu/GenAI-Chatbot/core"
)

// VectorIndex is a named, persistent collection of (document, embedding)
// pairs plus a similarity-search structure. Implementations must be
// thread-safe for concurrent readers; only the ingestion pipeline mutates an
// index, and never concurrently with itself against the same location.
type VectorIndex interface {
	// Append inserts len(docs) new (document, vector) pairs and durably
	// persists the updated index before returning: the pairs are visible to
	// a subsequent Open call from a new process. Existing pairs are never
	// mutated or removed; the index grows monotonically.
	//
	// len(docs) == len(vectors) is a precondition. Violating it is a
	// programming error, not a runtime condition to recover from.
	Append(ctx context.Context, docs []core.RecipeDoc, vectors [][]float32) error

	// Search returns up to k nearest neighbors by cosine similarity over the
	// stored vectors, best match first. Ties are broken by insertion order,
	// earlier-inserted wins. k <= 0 fails with ErrInvalidQuery.
	Search(ctx context.Context, queryVector []float32, k int) ([]*core.SearchResult, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Seal durably marks the index as completely built. Readers treat an
	// unsealed index as absent.
	Seal(ctx context.Context) error

	// Sealed reports whether the index has been marked complete.
	Sealed() bool

	// Location returns the durable location the index is bound to.
	Location() string

	// Close closes the index and releases resources.
	Close() error
}

// IndexStore manages index lifecycles at durable locations. Existence of the
// location is the load/create discriminator.
type IndexStore interface {
	// Open loads a persisted index. Returns ErrNotFound when no complete
	// index exists at location, so callers can distinguish "must create"
	// from "corrupt". An index that exists but was never sealed also opens
	// as ErrNotFound.
	Open(location string) (VectorIndex, error)

	// Create initializes an empty, unsealed index bound to location.
	// Fails with ErrStorageFailed if location is not writable.
	Create(location string) (VectorIndex, error)

	// Discard removes whatever index data exists at location.
	Discard(location string) error
}
