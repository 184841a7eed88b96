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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecipeDoc indicates a RecipeDoc failed validation.
	ErrInvalidRecipeDoc = errors.New("invalid recipe document")

	// ErrInvalidTurn indicates a ConversationTurn failed validation.
	ErrInvalidTurn = errors.New("invalid conversation turn")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingSource indicates the source metadata entry is absent.
	ErrMissingSource = errors.New("source metadata is required")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")
)
