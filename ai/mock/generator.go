package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, returns a canned answer echoing the prompt length.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
	prompts   []string
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via call counts and
// recorded prompts.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText returns a canned answer, recording the prompt for assertions.
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}

	return "mock answer", nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Prompts returns the prompts received, in call order.
func (m *MockGenerator) Prompts() []string {
	return m.prompts
}

// LastPrompt returns the most recent prompt, or "" if none were received.
func (m *MockGenerator) LastPrompt() string {
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.GenerateTextFunc = nil
}
