package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/buildrtech/dotagents/ai"
	"github.com/buildrtech/dotagents/core"
)

const (
	// DefaultTopN is the result limit applied when the caller passes a
	// non-positive topN.
	DefaultTopN = 5

	// DefaultThreshold is the minimum cosine similarity a result must
	// reach to be returned.
	DefaultThreshold = 0.5
)

// Searcher ranks learnings entries by cosine similarity to query text.
type Searcher struct {
	embedder  ai.Embedder
	threshold float64
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithThreshold sets the minimum similarity score for results.
// Default is DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(s *Searcher) error {
		s.threshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		embedder:  embedder,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search scores every entry against the queries and returns up to topN
// results whose best score reaches the threshold, best first.
//
// All queries are embedded in one batch call; an entry's score is its
// maximum cosine similarity across the queries, so adding paraphrased
// queries can only widen the result set. Equal scores keep the relative
// order entries held in the index (the sort is stable).
//
// Empty entries or embeddings yield an empty result, not an error.
func (s *Searcher) Search(ctx context.Context, queries []string, entries []core.Entry, embeddings [][]float32, topN int) ([]core.SearchResult, error) {
	if len(entries) == 0 || len(embeddings) == 0 {
		return nil, nil
	}
	if len(embeddings) != len(entries) {
		return nil, fmt.Errorf("%w (%d entries, %d rows)",
			core.ErrRowCountMismatch, len(entries), len(embeddings))
	}
	if len(queries) == 0 {
		return nil, ErrNoQueries
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	queryVectors, err := s.embedder.EmbedTexts(ctx, queries)
	if err != nil {
		s.logger.Error("error generating query embeddings", "queries", len(queries), "err", err)
		return nil, err
	}

	best := make([]float64, len(entries))
	for i := range best {
		best[i] = -1
	}
	for _, queryVector := range queryVectors {
		for i, row := range embeddings {
			if sim := Cosine(row, queryVector); sim > best[i] {
				best[i] = sim
			}
		}
	}

	results := make([]core.SearchResult, 0, len(entries))
	for i, score := range best {
		if score >= s.threshold {
			results = append(results, core.SearchResult{Entry: entries[i], Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}

	s.logger.Debug("search complete",
		"queries", len(queries), "entries", len(entries), "results", len(results))
	return results, nil
}
