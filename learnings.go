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


// Package dotagents provides incremental, cache-backed semantic search
// over markdown learnings files.
package dotagents

import (
	"context"
	"log/slog"

	"github.com/buildrtech/dotagents/ai"
	"github.com/buildrtech/dotagents/ai/openai"
	"github.com/buildrtech/dotagents/core"
	"github.com/buildrtech/dotagents/ingestion"
	"github.com/buildrtech/dotagents/search"
	"github.com/buildrtech/dotagents/storage/cachefile"
)

// Library is the top-level entry point. It wires the embedder, the
// cache-backed index manager, and the searcher over a single learnings
// directory.
type Library struct {
	dir      string
	embedder ai.Embedder
	manager  *ingestion.Manager
	searcher *search.Searcher
	logger   *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	logger   *slog.Logger
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder sets a custom embedder, bypassing the AI config.
func WithEmbedder(embedder ai.Embedder) LibraryOption {
	return func(o *libraryOptions) {
		o.embedder = embedder
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(o *libraryOptions) {
		o.logger = logger
	}
}

// NewLibrary creates a Library over the given learnings directory. The
// index cache is colocated with the directory.
func NewLibrary(dir string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil {
		inner, err := openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
		embedder, err = ai.NewRetryEmbedder(inner, ai.WithRetryLogger(options.logger))
		if err != nil {
			return nil, err
		}
	}

	store := cachefile.NewStore(cachefile.WithLogger(options.logger))

	manager, err := ingestion.NewManager(embedder, store, ingestion.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewSearcher(embedder, search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Library{
		dir:      dir,
		embedder: embedder,
		manager:  manager,
		searcher: searcher,
		logger:   options.logger,
	}, nil
}

// Search brings the index up to date, then runs the queries against it.
// The returned count is the number of indexed entries, so callers can
// distinguish an empty index from an empty result set.
func (l *Library) Search(ctx context.Context, queries []string, topN int) ([]core.SearchResult, int, error) {
	entries, embeddings, err := l.manager.LoadOrUpdate(ctx, l.dir, false)
	if err != nil {
		return nil, 0, err
	}
	if len(entries) == 0 {
		return nil, 0, nil
	}

	results, err := l.searcher.Search(ctx, queries, entries, embeddings, topN)
	if err != nil {
		return nil, 0, err
	}
	return results, len(entries), nil
}

// Reindex discards the cache and rebuilds the index from scratch.
// Returns the number of entries indexed.
func (l *Library) Reindex(ctx context.Context) (int, error) {
	entries, _, err := l.manager.LoadOrUpdate(ctx, l.dir, true)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
