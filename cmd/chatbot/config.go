package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/malisevdinoglu/GenAI-Chatbot/ai"
	"github.com/urfave/cli/v2"
)

// fileConfig mirrors the optional YAML config file. Every field is optional;
// command line flags override file values.
type fileConfig struct {
	Host            string   `yaml:"host"`
	EmbeddingHost   string   `yaml:"embedding_host"`
	GenerationHost  string   `yaml:"generation_host"`
	EmbeddingModel  string   `yaml:"embedding_model"`
	GenerationModel string   `yaml:"generation_model"`
	Temperature     *float64 `yaml:"temperature"`
	IndexPath       string   `yaml:"index_path"`
	DatasetPath     string   `yaml:"dataset_path"`
	TopK            int      `yaml:"top_k"`
}

// loadFileConfig reads the YAML config at path. A missing path is fine when
// the flag was left at its default; an explicitly named file must exist.
func loadFileConfig(path string, explicit bool) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &fileConfig{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}

// buildAIConfig merges config file values, environment, and flags into an AI
// config, in increasing order of precedence.
func buildAIConfig(c *cli.Context, fc *fileConfig) *ai.Config {
	var opts []ai.Option

	if fc.Host != "" {
		opts = append(opts, ai.WithHost(fc.Host))
	}
	if fc.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(fc.EmbeddingHost))
	}
	if fc.GenerationHost != "" {
		opts = append(opts, ai.WithGenerationHost(fc.GenerationHost))
	}
	if fc.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(fc.EmbeddingModel))
	}
	if fc.GenerationModel != "" {
		opts = append(opts, ai.WithGenerationModel(fc.GenerationModel))
	}
	if fc.Temperature != nil {
		opts = append(opts, ai.WithTemperature(*fc.Temperature))
	}

	if token := os.Getenv("OPENAI_API_KEY"); token != "" {
		opts = append(opts, ai.WithToken(token))
	}

	if c.IsSet("host") {
		opts = append(opts, ai.WithHost(c.String("host")))
	}
	if c.IsSet("embedding-model") {
		opts = append(opts, ai.WithEmbeddingModel(c.String("embedding-model")))
	}
	if c.IsSet("generation-model") {
		opts = append(opts, ai.WithGenerationModel(c.String("generation-model")))
	}
	if c.IsSet("temperature") {
		opts = append(opts, ai.WithTemperature(c.Float64("temperature")))
	}

	return ai.NewConfig(opts...)
}

// stringSetting resolves a flag against its config file fallback.
func stringSetting(c *cli.Context, name, fileValue string) string {
	if c.IsSet(name) || fileValue == "" {
		return c.String(name)
	}
	return fileValue
}
