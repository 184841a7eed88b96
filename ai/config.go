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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers. It is constructed once
// at process start and passed into component constructors; components never
// read the environment themselves.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// GenerationHost is the base URL for the chat/generation service API.
	GenerationHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// GenerationModel is the model identifier to use for answer generation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	GenerationModel string

	// Token is the API token sent to both services. Local OpenAI-compatible
	// services that don't require authentication accept any value.
	Token string

	// Temperature is the sampling temperature for answer generation.
	// Default: 0.7
	Temperature float64
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) Option {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerationHost sets the generation service host URL.
func WithGenerationHost(host string) Option {
	return func(c *Config) {
		c.GenerationHost = host
	}
}

// WithHost sets both embedding and generation hosts to the same URL.
func WithHost(host string) Option {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GenerationHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) Option {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) Option {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) Option {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTemperature sets the generation sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, both services use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:   defaultHost,
		GenerationHost:  defaultHost,
		EmbeddingModel:  "embeddinggemma",
		GenerationModel: "qwen2.5:3b",
		Token:           "none",
		Temperature:     0.7,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("https://api.openai.com/v1"),
//	    ai.WithEmbeddingModel("text-embedding-3-small"),
//	    ai.WithToken(apiKey),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.GenerationHost != "" && !strings.HasSuffix(c.GenerationHost, "/v1") {
		c.GenerationHost = strings.TrimSuffix(c.GenerationHost, "/")
		c.GenerationHost = c.GenerationHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerationHost == "" {
		return errors.New("ai config: GenerationHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.Token == "" {
		return errors.New("ai config: Token is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
