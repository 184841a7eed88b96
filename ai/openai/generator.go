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


package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat completions
	client, err := openai.New(
		openai.WithBaseURL(config.GenerationHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.GenerationModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateText runs one chat completion for the given prompt using the
// configured model and temperature.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating answer", "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", ai.ClassifyServiceError(err)
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return "", ai.ErrUnavailable
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
