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

import "github.com/malisevdinoglu/GenAI-Chatbot/core"

// Memory is an append-only transcript of a session. Turns are kept in
// occurrence order and are never mutated or dropped. Memory is not
// synchronized; the owning Session serializes access.
type Memory struct {
	turns []core.ConversationTurn
}

// NewMemory creates an empty conversation memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a turn at the end of the transcript.
func (m *Memory) Append(turn core.ConversationTurn) {
	m.turns = append(m.turns, turn)
}

// AsContext returns a copy of the transcript in occurrence order. Mutating
// the returned slice does not affect the memory.
func (m *Memory) AsContext() []core.ConversationTurn {
	out := make([]core.ConversationTurn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of recorded turns.
func (m *Memory) Len() int {
	return len(m.turns)
}
