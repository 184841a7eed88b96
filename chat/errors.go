package chat

import "errors"

var (
	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrEmptyQuestion is returned when Ask is called with a blank question.
	ErrEmptyQuestion = errors.New("question must not be empty")

	// ErrGenerationFailed indicates the language model could not produce an
	// answer for an otherwise valid question.
	ErrGenerationFailed = errors.New("answer generation failed")
)
