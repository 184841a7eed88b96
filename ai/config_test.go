package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GenerationHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.GenerationModel)
	assert.Equal(t, 0.7, cfg.Temperature)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://api.openai.com/v1"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithGenerationModel("gpt-4o-mini"),
		WithToken("sk-test"),
		WithTemperature(0.2),
	)

	assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
	assert.Equal(t, "https://api.openai.com/v1", cfg.GenerationHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.GenerationModel)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, 0.2, cfg.Temperature)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "missing /v1 suffix", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "already normalized", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.GenerationHost)
		})
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty embedding host", mutate: func(c *Config) { c.EmbeddingHost = "" }},
		{name: "empty generation host", mutate: func(c *Config) { c.GenerationHost = "" }},
		{name: "empty embedding model", mutate: func(c *Config) { c.EmbeddingModel = "" }},
		{name: "empty generation model", mutate: func(c *Config) { c.GenerationModel = "" }},
		{name: "empty token", mutate: func(c *Config) { c.Token = "" }},
		{name: "negative temperature", mutate: func(c *Config) { c.Temperature = -0.1 }},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 2.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
