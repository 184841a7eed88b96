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


// Package storage provides the vector index abstraction for the chatbot.
//
// This package defines the interfaces that decouple index persistence from
// the ingestion and retrieval logic. It allows different index backends
// (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple backend
// implementations:
//
//	index, err := badger.OpenIndex(path)  // returns storage.VectorIndex interface
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Architecture
//
// The storage layer consists of two interfaces:
//
//   - VectorIndex: a single persistent index holding documents and their
//     embedding vectors, supporting append, similarity search, and sealing
//   - IndexStore: lifecycle management for indexes at filesystem locations
//     (open, create, discard)
//
// # Index Lifecycle
//
// An index starts unsealed while ingestion appends batches to it. Sealing
// marks the index complete; only sealed indexes can be opened for retrieval.
// An unsealed index left behind by an interrupted ingestion run is treated
// as absent and rebuilt from scratch.
//
// # Usage
//
// Create an index, fill it, and seal it:
//
//	index, err := badger.CreateIndex("/path/to/index")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer index.Close()
//
//	if err := index.Append(ctx, docs, vectors); err != nil {
//	    log.Fatal(err)
//	}
//	if err := index.Seal(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Use in tests with in-memory storage:
//
//	index, err := badger.CreateMemoryIndex()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer index.Close()
//
// # Thread Safety
//
// All index implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All index methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package storage
