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


// Package ai provides abstractions for the AI services used by the chatbot.
//
// This package defines interfaces for text embedding and answer generation.
// It follows the dependency inversion principle: the ingestion and
// conversational pipelines depend on these abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces free-form answers from assembled prompts
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Error Taxonomy
//
// Remote call failures are classified into ErrRateLimited, ErrUnavailable and
// ErrInvalidInput. The first two are transient and may be retried; the last is
// a caller bug and must never be retried. Retry policy itself lives in the
// ingest package — embedders and generators fail fast.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, texts)
//	answer, err := provider.Generator().GenerateText(ctx, prompt)
package ai
