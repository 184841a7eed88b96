package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/malisevdinoglu/GenAI-Chatbot/ai/mock"
	"github.com/malisevdinoglu/GenAI-Chatbot/core"
)

// testRetriever implements Retriever for testing
type testRetriever struct {
	docs      []core.RecipeDoc
	err       error
	callCount int
	queries   []string
}

func (r *testRetriever) Retrieve(ctx context.Context, query string) ([]core.RecipeDoc, error) {
	r.callCount++
	r.queries = append(r.queries, query)
	if r.err != nil {
		return nil, r.err
	}
	return r.docs, nil
}

func soupDocs() []core.RecipeDoc {
	return []core.RecipeDoc{
		{Content: "Recipe Title: Tomato Soup\n\nIngredients: tomatoes\n\nInstructions: simmer",
			Metadata: map[string]string{core.MetaSource: "recipes.csv_row_0"}},
		{Content: "Recipe Title: Minestrone\n\nIngredients: beans\n\nInstructions: boil",
			Metadata: map[string]string{core.MetaSource: "recipes.csv_row_1"}},
	}
}

func TestNewSession_Validation(t *testing.T) {
	retriever := &testRetriever{}
	generator := mock.NewMockGenerator()

	_, err := NewSession(nil, generator)
	assert.ErrorIs(t, err, ErrRetrieverRequired)

	_, err = NewSession(retriever, nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)

	_, err = NewSession(retriever, generator, WithContextWindow(-1))
	assert.Error(t, err)
}

func TestNewSession_UniqueIDs(t *testing.T) {
	retriever := &testRetriever{}
	generator := mock.NewMockGenerator()

	a, err := NewSession(retriever, generator)
	require.NoError(t, err)
	b, err := NewSession(retriever, generator)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, StateIdle, a.State())
}

func TestAsk_AppendsUserThenAssistant(t *testing.T) {
	retriever := &testRetriever{docs: soupDocs()}
	generator := mock.NewMockGenerator()
	answers := []string{"Try the tomato soup.", "Minestrone also works."}
	generator.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		return answers[generator.CallCount()-1], nil
	}

	s, err := NewSession(retriever, generator)
	require.NoError(t, err)

	first, err := s.Ask(context.Background(), "what soup can I make?")
	require.NoError(t, err)
	assert.Equal(t, "Try the tomato soup.", first)

	second, err := s.Ask(context.Background(), "anything heartier?")
	require.NoError(t, err)
	assert.Equal(t, "Minestrone also works.", second)

	history := s.History()
	require.Len(t, history, 4)
	assert.Equal(t, core.ConversationTurn{Role: core.RoleUser, Text: "what soup can I make?"}, history[0])
	assert.Equal(t, core.ConversationTurn{Role: core.RoleAssistant, Text: "Try the tomato soup."}, history[1])
	assert.Equal(t, core.ConversationTurn{Role: core.RoleUser, Text: "anything heartier?"}, history[2])
	assert.Equal(t, core.ConversationTurn{Role: core.RoleAssistant, Text: "Minestrone also works."}, history[3])
	assert.Equal(t, StateAnswered, s.State())
}

func TestAsk_PromptLayout(t *testing.T) {
	retriever := &testRetriever{docs: soupDocs()}
	generator := mock.NewMockGenerator()

	s, err := NewSession(retriever, generator)
	require.NoError(t, err)

	_, err = s.Ask(context.Background(), "first question")
	require.NoError(t, err)
	_, err = s.Ask(context.Background(), "second question")
	require.NoError(t, err)

	prompt := generator.LastPrompt()

	// Documents come before history, history before the question
	docPos := strings.Index(prompt, "Recipe Title: Tomato Soup")
	historyPos := strings.Index(prompt, "User: first question")
	questionPos := strings.Index(prompt, "Question: second question")
	require.NotEqual(t, -1, docPos)
	require.NotEqual(t, -1, historyPos)
	require.NotEqual(t, -1, questionPos)
	assert.Less(t, docPos, historyPos)
	assert.Less(t, historyPos, questionPos)

	// The first exchange appears in full and in order
	answerPos := strings.Index(prompt, "Assistant: mock answer")
	require.NotEqual(t, -1, answerPos)
	assert.Less(t, historyPos, answerPos)
}

func TestAsk_EmptyRetrievalStillGenerates(t *testing.T) {
	retriever := &testRetriever{docs: nil}
	generator := mock.NewMockGenerator()

	s, err := NewSession(retriever, generator)
	require.NoError(t, err)

	answer, err := s.Ask(context.Background(), "question with no matches")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Equal(t, 1, generator.CallCount())
	assert.Contains(t, generator.LastPrompt(), "none found")
}

func TestAsk_EmptyQuestion(t *testing.T) {
	retriever := &testRetriever{docs: soupDocs()}
	generator := mock.NewMockGenerator()

	s, err := NewSession(retriever, generator)
	require.NoError(t, err)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := s.Ask(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
	assert.Equal(t, 0, retriever.callCount)
	assert.Empty(t, s.History())
}

func TestAsk_RetrievalFailureLeavesMemoryUntouched(t *testing.T) {
	retriever := &testRetriever{err: errors.New("index unavailable")}
	generator := mock.NewMockGenerator()

	s, err := NewSession(retriever, generator)
	require.NoError(t, err)

	_, err = s.Ask(context.Background(), "question")
	require.Error(t, err)
	assert.Equal(t, StateFailed, s.State())
	assert.Empty(t, s.History())
	assert.Equal(t, 0, generator.CallCount())
}

func TestAsk_GenerationFailureLeavesMemoryUntouched(t *testing.T) {
	retriever := &testRetriever{docs: soupDocs()}
	generator := mock.NewMockGenerator()
	generator.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", fmt.Errorf("%w: model overloaded", ai.ErrUnavailable)
	}

	s, err := NewSession(retriever, generator)
	require.NoError(t, err)

	_, err = s.Ask(context.Background(), "question")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ai.ErrUnavailable)
	assert.Equal(t, StateFailed, s.State())
	assert.Empty(t, s.History())

	// The failed ask can simply be repeated
	generator.GenerateTextFunc = nil
	answer, err := s.Ask(context.Background(), "question")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Len(t, s.History(), 2)
}

func TestAsk_ContextWindow(t *testing.T) {
	retriever := &testRetriever{docs: soupDocs()}
	generator := mock.NewMockGenerator()

	s, err := NewSession(retriever, generator, WithContextWindow(2))
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := s.Ask(context.Background(), fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	// Memory keeps everything
	assert.Len(t, s.History(), 6)

	// The prompt for ask 3 only saw the last two turns (exchange 2)
	prompt := generator.LastPrompt()
	assert.NotContains(t, prompt, "User: question 1")
	assert.Contains(t, prompt, "User: question 2")
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.AsContext())

	m.Append(core.ConversationTurn{Role: core.RoleUser, Text: "hi"})
	m.Append(core.ConversationTurn{Role: core.RoleAssistant, Text: "hello"})
	assert.Equal(t, 2, m.Len())

	// AsContext returns a copy
	ctx := m.AsContext()
	ctx[0].Text = "mutated"
	assert.Equal(t, "hi", m.AsContext()[0].Text)
}

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	prompt := buildPrompt(soupDocs(), nil, "what soup?")

	assert.NotContains(t, prompt, "Conversation so far:")
	assert.Contains(t, prompt, "Recipe Title: Tomato Soup")
	assert.True(t, strings.HasSuffix(prompt, "Question: what soup?\nAnswer:"))
}
