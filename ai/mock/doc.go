// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Generator,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vectors, err := mockProvider.Embedder().EmbedTexts(ctx, []string{"test"})
//
//	// Custom behavior injection
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, ai.ErrRateLimited
//	}
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockGenerator: Returns a canned answer and records received prompts
//   - MockProvider: Aggregates mock embedder and generator
package mock
