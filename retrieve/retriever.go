// Copyright 2026 The GenAI-Chatbot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package retrieve turns free-text questions into relevant documents from a
// sealed vector index.
package retrieve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/malisevdinoglu/GenAI-Chatbot/core"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage"
)

// DefaultTopK is how many documents a retriever returns by default.
const DefaultTopK = 4

// Retriever embeds queries and searches a vector index for the most similar
// documents. Retrieval is read-only and safe for concurrent use.
type Retriever struct {
	index    storage.VectorIndex
	embedder ai.Embedder
	topK     int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithTopK sets how many documents are retrieved per query.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(r *Retriever) error {
		if k < 1 {
			return fmt.Errorf("top-k must be positive, got %d", k)
		}
		r.topK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever over a sealed index.
func NewRetriever(index storage.VectorIndex, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		index:    index,
		embedder: embedder,
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to the configured top-k documents most similar to
// query, best match first. A failure on either the embedding call or the
// index search is reported as ErrRetrievalFailed; retrieval is interactive
// and never retries.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]core.RecipeDoc, error) {
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", ErrRetrievalFailed, err)
	}
	vector = ai.NormalizeVector(vector)

	results, err := r.index.Search(ctx, vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: searching index: %w", ErrRetrievalFailed, err)
	}

	docs := make([]core.RecipeDoc, len(results))
	for i, result := range results {
		docs[i] = result.Doc
	}

	r.logger.Debug("retrieved documents", "query_len", len(query), "count", len(docs))
	return docs, nil
}

// TopK returns the configured number of documents per query.
func (r *Retriever) TopK() int {
	return r.topK
}
