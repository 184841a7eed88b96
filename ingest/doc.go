// Package ingest builds persistent vector indexes from prepared documents.
//
// The Pipeline type manages the document-to-vector workflow:
//   - Embedding documents in fixed-size batches
//   - Pacing batch requests so the embedding service is not flooded
//   - Retrying transient service failures with a fixed cooldown
//   - Appending (document, vector) pairs durably and sealing the index
//
// Batches are processed strictly one at a time. An index that already exists
// and is sealed is reused untouched unless a rebuild is requested.
package ingest
