package retrieve

import "errors"

var (
	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrRetrievalFailed indicates a retrieval attempt that could not produce
	// results, either because the query embedding or the index search failed.
	ErrRetrievalFailed = errors.New("retrieval failed")
)
