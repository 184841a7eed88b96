package retrieve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/malisevdinoglu/GenAI-Chatbot/ai/mock"
	"github.com/malisevdinoglu/GenAI-Chatbot/core"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage/badger"
)

func setupIndex(t *testing.T) storage.VectorIndex {
	index, err := badger.CreateMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	docs := []core.RecipeDoc{
		{Content: "Recipe Title: Tomato Soup", Metadata: map[string]string{core.MetaSource: "recipes.csv_row_0"}},
		{Content: "Recipe Title: Lentil Curry", Metadata: map[string]string{core.MetaSource: "recipes.csv_row_1"}},
		{Content: "Recipe Title: Apple Pie", Metadata: map[string]string{core.MetaSource: "recipes.csv_row_2"}},
	}
	vectors := [][]float32{
		{1.0, 0.0, 0.0},
		{0.0, 1.0, 0.0},
		{0.0, 0.0, 1.0},
	}
	require.NoError(t, index.Append(context.Background(), docs, vectors))
	require.NoError(t, index.Seal(context.Background()))
	return index
}

func fixedEmbedder(vector []float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
	return embedder
}

func TestNewRetriever_Validation(t *testing.T) {
	index := setupIndex(t)
	embedder := mock.NewMockEmbedder()

	_, err := NewRetriever(nil, embedder)
	assert.ErrorIs(t, err, ErrIndexRequired)

	_, err = NewRetriever(index, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewRetriever(index, embedder, WithTopK(0))
	assert.Error(t, err)
}

func TestRetrieve_ReturnsMostSimilarFirst(t *testing.T) {
	index := setupIndex(t)
	embedder := fixedEmbedder([]float32{0.9, 0.1, 0.0})

	r, err := NewRetriever(index, embedder, WithTopK(2))
	require.NoError(t, err)

	docs, err := r.Retrieve(context.Background(), "how do I make tomato soup?")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Recipe Title: Tomato Soup", docs[0].Content)
	assert.Equal(t, "Recipe Title: Lentil Curry", docs[1].Content)
	assert.Equal(t, "recipes.csv_row_0", docs[0].Metadata[core.MetaSource])
}

func TestRetrieve_DefaultTopK(t *testing.T) {
	index := setupIndex(t)
	embedder := fixedEmbedder([]float32{1.0, 0.0, 0.0})

	r, err := NewRetriever(index, embedder)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopK, r.TopK())

	// Index holds fewer documents than top-k
	docs, err := r.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestRetrieve_NormalizesQueryVector(t *testing.T) {
	index := setupIndex(t)
	// Unnormalized query pointing at the first document
	embedder := fixedEmbedder([]float32{7.0, 0.0, 0.0})

	r, err := NewRetriever(index, embedder, WithTopK(1))
	require.NoError(t, err)

	docs, err := r.Retrieve(context.Background(), "soup")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Recipe Title: Tomato Soup", docs[0].Content)
}

func TestRetrieve_EmbeddingFailure(t *testing.T) {
	index := setupIndex(t)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, fmt.Errorf("%w: service down", ai.ErrUnavailable)
	}

	r, err := NewRetriever(index, embedder)
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(), "soup")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetrievalFailed)
	assert.ErrorIs(t, err, ai.ErrUnavailable)

	// No retries for interactive retrieval
	assert.Equal(t, 1, embedder.CallCount())
}

func TestRetrieve_SearchFailure(t *testing.T) {
	index := setupIndex(t)
	require.NoError(t, index.Close())
	embedder := fixedEmbedder([]float32{1.0, 0.0, 0.0})

	r, err := NewRetriever(index, embedder)
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(), "soup")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetrievalFailed)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	index, err := badger.CreateMemoryIndex()
	require.NoError(t, err)
	defer index.Close()
	require.NoError(t, index.Seal(context.Background()))

	embedder := fixedEmbedder([]float32{1.0, 0.0})
	r, err := NewRetriever(index, embedder)
	require.NoError(t, err)

	docs, err := r.Retrieve(context.Background(), "soup")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetrieve_ErrorChainStaysInspectable(t *testing.T) {
	index := setupIndex(t)
	sentinel := errors.New("deadline exceeded")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, sentinel
	}

	r, err := NewRetriever(index, embedder)
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(), "soup")
	assert.ErrorIs(t, err, sentinel)
}
