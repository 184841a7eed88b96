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


package chatbot

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/malisevdinoglu/GenAI-Chatbot/ai/openai"
	"github.com/malisevdinoglu/GenAI-Chatbot/chat"
	"github.com/malisevdinoglu/GenAI-Chatbot/dataset"
	"github.com/malisevdinoglu/GenAI-Chatbot/ingest"
	"github.com/malisevdinoglu/GenAI-Chatbot/retrieve"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage/badger"
)

// ErrIndexNotReady is returned when a session is requested before EnsureIndex
// has loaded or built the vector index.
var ErrIndexNotReady = errors.New("vector index not ready, call EnsureIndex first")

// Assistant is the top-level facade tying together the dataset, the vector
// index, and the AI services behind the recipe chatbot.
type Assistant struct {
	store    storage.IndexStore
	provider ai.Provider
	index    storage.VectorIndex
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	store    storage.IndexStore
}

// WithAIConfig sets the configuration used to build the AI provider.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing config-based
// construction. Used by tests to run against mock services.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithIndexStore overrides the default disk-backed index store.
func WithIndexStore(store storage.IndexStore) AssistantOption {
	return func(o *assistantOptions) {
		o.store = store
	}
}

// NewAssistant creates an assistant. The vector index is not touched until
// EnsureIndex is called.
func NewAssistant(opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	store := options.store
	if store == nil {
		store = badger.NewStore()
	}

	return &Assistant{
		store:    store,
		provider: provider,
		logger:   slog.Default().With("component", "assistant"),
	}, nil
}

// IngestConfig describes where the dataset lives and how to build the index.
type IngestConfig struct {
	// DatasetPath is the CSV file holding the raw recipes.
	DatasetPath string

	// Limit caps how many dataset rows are considered, before filtering.
	// Zero means all rows.
	Limit int

	// Rebuild discards any existing index and builds it from scratch.
	Rebuild bool
}

// EnsureIndex makes a sealed vector index available at indexPath, loading it
// when one exists and otherwise building it from the dataset. The resulting
// index backs every session the assistant creates.
func (a *Assistant) EnsureIndex(ctx context.Context, indexPath string, config IngestConfig, pipelineOpts ...ingest.Option) (*ingest.Result, error) {
	if a.index != nil {
		a.index.Close()
		a.index = nil
	}

	if !config.Rebuild {
		index, err := a.store.Open(indexPath)
		if err == nil {
			a.logger.Info("loaded existing index", "path", indexPath)
			a.index = index
			return &ingest.Result{Index: index, Skipped: true}, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	records, err := dataset.ReadRecords(config.DatasetPath)
	if err != nil {
		return nil, err
	}
	docs := dataset.Prepare(records, filepath.Base(config.DatasetPath), config.Limit)

	pipeline, err := ingest.NewPipeline(a.store, a.provider.Embedder(), pipelineOpts...)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(ctx, indexPath, docs, config.Rebuild)
	if err != nil {
		return nil, err
	}

	a.index = result.Index
	return result, nil
}

// NewRetriever creates a retriever over the assistant's index.
func (a *Assistant) NewRetriever(opts ...retrieve.Option) (*retrieve.Retriever, error) {
	if a.index == nil {
		return nil, ErrIndexNotReady
	}
	return retrieve.NewRetriever(a.index, a.provider.Embedder(), opts...)
}

// NewSession starts a conversation backed by the assistant's index.
func (a *Assistant) NewSession(retrieveOpts []retrieve.Option, sessionOpts ...chat.SessionOption) (*chat.Session, error) {
	retriever, err := a.NewRetriever(retrieveOpts...)
	if err != nil {
		return nil, err
	}
	return chat.NewSession(retriever, a.provider.Generator(), sessionOpts...)
}

// Index returns the loaded vector index, or nil before EnsureIndex.
func (a *Assistant) Index() storage.VectorIndex {
	return a.index
}

// Close releases the index and the AI provider.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if a.index != nil {
		if err := a.index.Close(); err != nil {
			a.logger.Error("error closing vector index", "err", err)
			return err
		}
		a.index = nil
	}
	return nil
}
