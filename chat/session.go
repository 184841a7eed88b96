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


package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/malisevdinoglu/GenAI-Chatbot/core"
)

// Retriever finds the documents most relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]core.RecipeDoc, error)
}

// State describes where a session is in its ask cycle.
type State string

const (
	StateIdle       State = "idle"
	StateRetrieving State = "retrieving"
	StateGenerating State = "generating"
	StateAnswered   State = "answered"
	StateFailed     State = "failed"
)

// Session is one conversation: a transcript plus the retriever and generator
// that answer its questions. Asks are serialized; a Session is safe for
// concurrent use but answers one question at a time.
type Session struct {
	id        string
	retriever Retriever
	generator ai.Generator
	window    int
	logger    *slog.Logger

	mu     sync.Mutex
	memory *Memory
	state  State
}

// SessionOption configures a Session.
type SessionOption func(*Session) error

// WithContextWindow caps how many of the most recent turns are included in
// the prompt. Zero, the default, includes the full transcript.
func WithContextWindow(turns int) SessionOption {
	return func(s *Session) error {
		if turns < 0 {
			return fmt.Errorf("context window must not be negative, got %d", turns)
		}
		s.window = turns
		return nil
	}
}

// WithSessionLogger sets a custom logger.
// Default is slog.Default().
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSession creates a session with an empty transcript.
func NewSession(retriever Retriever, generator ai.Generator, opts ...SessionOption) (*Session, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Session{
		id:        uuid.NewString(),
		retriever: retriever,
		generator: generator,
		memory:    NewMemory(),
		state:     StateIdle,
		logger:    slog.Default().With("component", "chat"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.logger = s.logger.With("session_id", s.id)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the transcript in occurrence order.
func (s *Session) History() []core.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.AsContext()
}

// Ask answers a question using retrieved documents and the conversation so
// far. On success the question and answer are appended to the transcript, in
// that order. On failure the transcript is left untouched, so a failed ask
// can simply be repeated.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateRetrieving
	docs, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		s.state = StateFailed
		return "", err
	}
	if len(docs) == 0 {
		s.logger.Debug("no documents retrieved, answering from history alone")
	}

	history := s.promptHistory()
	prompt := buildPrompt(docs, history, question)

	s.state = StateGenerating
	answer, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.state = StateFailed
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	s.memory.Append(core.ConversationTurn{Role: core.RoleUser, Text: question})
	s.memory.Append(core.ConversationTurn{Role: core.RoleAssistant, Text: answer})
	s.state = StateAnswered

	s.logger.Debug("question answered", "docs", len(docs), "turns", s.memory.Len())
	return answer, nil
}

// promptHistory returns the transcript slice included in prompts, applying
// the context window. Caller must hold s.mu.
func (s *Session) promptHistory() []core.ConversationTurn {
	history := s.memory.AsContext()
	if s.window > 0 && len(history) > s.window {
		history = history[len(history)-s.window:]
	}
	return history
}
