// Copyright 2025 Buildr Technologies
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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/buildrtech/dotagents"
	"github.com/buildrtech/dotagents/ai"
	"github.com/buildrtech/dotagents/core"
	"github.com/buildrtech/dotagents/repo"
)

const resultSeparator = "\n\n---\n\n"

func main() {
	// Optional .env; flag env vars must be set before parsing.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "learnings",
		Usage: "Semantic search over docs/learnings/ files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				EnvVars: []string{"LEARNINGS_EMBEDDING_HOST"},
				Value:   "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"LEARNINGS_EMBEDDING_MODEL"},
				Value:   "embeddinggemma",
			},
		},
		Before: setupLogger,
		Action: func(c *cli.Context) error {
			// No subcommand given
			_ = cli.ShowAppHelp(c)
			return cli.Exit("", 1)
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search learnings by query",
				ArgsUsage: "query [query ...]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "n",
						Usage: "Number of results",
						Value: 5,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Force full re-index",
				Action: reindexCommand,
			},
		},
	}
}

func searchCommand(c *cli.Context) error {
	queries := c.Args().Slice()
	if len(queries) == 0 {
		return fmt.Errorf("at least one search query is required")
	}

	library, err := openLibrary(c)
	if err != nil {
		return err
	}

	results, total, err := library.Search(c.Context, queries, c.Int("n"))
	if err != nil {
		return err
	}

	if total == 0 {
		fmt.Fprintln(c.App.Writer, "No learnings entries found.")
		return nil
	}
	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "No results above similarity threshold.")
		return nil
	}

	formatted := make([]string, len(results))
	for i, result := range results {
		formatted[i] = formatResult(result)
	}
	fmt.Fprintln(c.App.Writer, strings.Join(formatted, resultSeparator))
	return nil
}

func reindexCommand(c *cli.Context) error {
	library, err := openLibrary(c)
	if err != nil {
		return err
	}

	count, err := library.Reindex(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Re-indexed %d entries.\n", count)
	return nil
}

// openLibrary resolves the learnings directory for the enclosing git
// repository and wires a library against the configured embedding
// service.
func openLibrary(c *cli.Context) (*dotagents.Library, error) {
	dir, err := repo.FindLearningsDir(c.Context)
	if err != nil {
		return nil, err
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	return dotagents.NewLibrary(dir, dotagents.WithAIConfig(aiConfig))
}

// formatResult renders one search result: title, source, score, then
// the entry body when present.
func formatResult(result core.SearchResult) string {
	lines := []string{
		result.Entry.Title,
		fmt.Sprintf("Source: %s", result.Entry.SourceFile),
		fmt.Sprintf("Score: %.2f", result.Score),
	}
	if result.Entry.Content != "" {
		lines = append(lines, "", result.Entry.Content)
	}
	return strings.Join(lines, "\n")
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
