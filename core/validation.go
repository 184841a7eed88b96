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

import "fmt"

// ValidateRecipeDoc validates a RecipeDoc according to domain rules.
//
// Validation rules:
//   - Content must not be empty (rows with missing fields are dropped
//     by the preparer, never turned into empty documents)
//   - Metadata must carry a source identifier
func ValidateRecipeDoc(doc *RecipeDoc) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidRecipeDoc)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipeDoc, ErrEmptyContent)
	}

	if doc.Metadata[MetaSource] == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecipeDoc, ErrMissingSource)
	}

	return nil
}

// ValidateTurn validates a ConversationTurn according to domain rules.
func ValidateTurn(turn *ConversationTurn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}

	if turn.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyContent)
	}

	if err := ValidateRole(turn.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, err)
	}

	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("%w: value %d", ErrInvalidRole, role)
	}
	return nil
}
