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


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	chatbot "github.com/malisevdinoglu/GenAI-Chatbot"
	"github.com/malisevdinoglu/GenAI-Chatbot/chat"
	"github.com/malisevdinoglu/GenAI-Chatbot/ingest"
	"github.com/malisevdinoglu/GenAI-Chatbot/retrieve"
)

const (
	defaultConfigPath = "chatbot.yaml"
	defaultIndexPath  = "recipe_index"

	greeting = "Hello! I am your recipe assistant. What kind of recipe are you looking for?\n" +
		"Type 'exit' or 'quit' to leave."
	farewell        = "See you later!"
	fallbackMessage = "Sorry, I could not answer that one. Please try again."
)

func main() {
	// Local development secrets, absence is fine
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "chatbot",
		Usage: "Retrieval-augmented recipe assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   defaultConfigPath,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Build the vector index from a recipe dataset",
				Action: ingestCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"d"},
						Usage:   "Path to the recipe CSV file",
					},
					&cli.StringFlag{
						Name:    "index",
						Aliases: []string{"i"},
						Usage:   "Path to the vector index directory",
						Value:   defaultIndexPath,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Only consider the first N dataset rows (0 = all)",
					},
					&cli.BoolFlag{
						Name:  "rebuild",
						Usage: "Discard any existing index and rebuild from scratch",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents embedded per request",
						Value: ingest.DefaultBatchSize,
					},
				),
			},
			{
				Name:   "chat",
				Usage:  "Start an interactive conversation with the assistant",
				Action: chatCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"d"},
						Usage:   "Path to the recipe CSV file, used if the index must be built",
					},
					&cli.StringFlag{
						Name:    "index",
						Aliases: []string{"i"},
						Usage:   "Path to the vector index directory",
						Value:   defaultIndexPath,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of recipes retrieved per question",
						Value: retrieve.DefaultTopK,
					},
					&cli.IntFlag{
						Name:  "context-window",
						Usage: "Most recent turns included in prompts (0 = all)",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags are the flags shared by every command that talks to AI services.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "generation-model",
			Usage: "Generation model name",
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "Generation temperature",
		},
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	fc, err := loadFileConfig(c.String("config"), c.IsSet("config"))
	if err != nil {
		return err
	}

	datasetPath := stringSetting(c, "dataset", fc.DatasetPath)
	if datasetPath == "" {
		return fmt.Errorf("dataset path is required, pass --dataset or set dataset_path in the config file")
	}
	indexPath := stringSetting(c, "index", fc.IndexPath)

	assistant, err := chatbot.NewAssistant(chatbot.WithAIConfig(buildAIConfig(c, fc)))
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	var bar *progressbar.ProgressBar
	progress := func(ingested, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("embedding recipes"),
				progressbar.OptionShowCount(),
			)
		}
		bar.Set(ingested)
	}

	fmt.Fprintf(os.Stderr, "Dataset: %s\n", datasetPath)
	fmt.Fprintf(os.Stderr, "Index:   %s\n", indexPath)
	fmt.Fprintln(os.Stderr)

	result, err := assistant.EnsureIndex(ctx, indexPath, chatbot.IngestConfig{
		DatasetPath: datasetPath,
		Limit:       c.Int("limit"),
		Rebuild:     c.Bool("rebuild"),
	},
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithProgress(progress),
	)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if result.Skipped {
		count, err := result.Index.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Index already built with %d recipes, nothing to do (use --rebuild to start over)\n", count)
		return nil
	}

	fmt.Fprintf(os.Stderr, "Indexed %d recipes at %s\n", result.Ingested, indexPath)
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	fc, err := loadFileConfig(c.String("config"), c.IsSet("config"))
	if err != nil {
		return err
	}

	indexPath := stringSetting(c, "index", fc.IndexPath)
	datasetPath := stringSetting(c, "dataset", fc.DatasetPath)

	assistant, err := chatbot.NewAssistant(chatbot.WithAIConfig(buildAIConfig(c, fc)))
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	result, err := assistant.EnsureIndex(ctx, indexPath, chatbot.IngestConfig{
		DatasetPath: datasetPath,
	})
	if err != nil {
		return fmt.Errorf("failed to prepare index (pass --dataset to build a missing one): %w", err)
	}
	if !result.Skipped {
		fmt.Fprintf(os.Stderr, "Built index with %d recipes\n", result.Ingested)
	}

	topK := c.Int("top-k")
	if !c.IsSet("top-k") && fc.TopK > 0 {
		topK = fc.TopK
	}

	var sessionOpts []chat.SessionOption
	if window := c.Int("context-window"); window > 0 {
		sessionOpts = append(sessionOpts, chat.WithContextWindow(window))
	}

	session, err := assistant.NewSession(
		[]retrieve.Option{retrieve.WithTopK(topK)},
		sessionOpts...,
	)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	fmt.Println()
	fmt.Println("--- Recipe Assistant ---")
	fmt.Println(greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExit(input) {
			fmt.Println(farewell)
			break
		}

		answer, err := session.Ask(ctx, input)
		if err != nil {
			slog.Error("ask failed", "err", err)
			fmt.Printf("\nAssistant: %s\n", fallbackMessage)
			continue
		}
		fmt.Printf("\nAssistant: %s\n", answer)
	}

	return scanner.Err()
}

func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
