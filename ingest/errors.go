package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexStoreRequired is returned when an index store is not provided.
	ErrIndexStoreRequired = errors.New("index store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoDocuments is returned when a build is requested with no documents.
	ErrNoDocuments = errors.New("no documents to ingest")
)

// IngestionError reports a failed ingestion run together with how many
// documents had been durably appended before the failure.
type IngestionError struct {
	Ingested int
	Err      error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed after %d documents: %v", e.Ingested, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}
