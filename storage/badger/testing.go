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


package badger

import (
	"log/slog"

	"github.com/malisevdinoglu/GenAI-Chatbot/storage"
)

// NewMemoryStore creates an IndexStore backed by in-memory BadgerDB for
// testing. Indexes it creates do not survive Close, so Open always reports
// storage.ErrNotFound.
func NewMemoryStore() storage.IndexStore {
	return &Store{
		inMemory: true,
		logger:   slog.Default().With("component", "index_store"),
	}
}

// CreateMemoryIndex creates an empty in-memory index for testing.
// Caller must close the index when done.
func CreateMemoryIndex() (storage.VectorIndex, error) {
	return NewMemoryStore().Create("")
}
