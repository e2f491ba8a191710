package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sort"

	"github.com/buildrtech/dotagents/ai"
	"github.com/buildrtech/dotagents/core"
	"github.com/buildrtech/dotagents/storage"
)

// Manager keeps the persisted index for a learnings directory in sync with
// its source files. Change detection is content-addressed: a file is
// re-parsed and re-embedded only when its hash differs from the cached one.
//
// The index assumes a single embedding provider with a constant vector
// width. Switching providers or models without a forced rebuild is
// undefined behavior; run LoadOrUpdate with force=true after changing the
// embedding configuration.
type Manager struct {
	embedder ai.Embedder
	store    storage.IndexStore
	logger   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a new incremental index manager.
func NewManager(embedder ai.Embedder, store storage.IndexStore, opts ...Option) (*Manager, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}

	m := &Manager{
		embedder: embedder,
		store:    store,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// LoadOrUpdate returns the entries and aligned embeddings for dir, reusing
// the persisted cache where content hashes match. With force=true the cache
// is ignored and the whole directory is re-parsed and re-embedded.
//
// A directory with no eligible files returns empty results and writes no
// cache. Embedding failures propagate and leave the prior artifact
// untouched; cache write failures propagate as well.
func (m *Manager) LoadOrUpdate(ctx context.Context, dir string, force bool) ([]core.Entry, [][]float32, error) {
	files, err := EligibleFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		m.logger.Debug("no eligible files", "dir", dir)
		return nil, nil, nil
	}

	currentHashes, err := computeHashes(files)
	if err != nil {
		return nil, nil, err
	}

	var cached *core.Index
	if !force {
		if loaded, ok := m.store.Load(dir); ok {
			cached = loaded
		}
	}

	if cached != nil && maps.Equal(cached.FileHashes, currentHashes) {
		m.logger.Debug("cache hit", "dir", dir, "entries", len(cached.Entries))
		return cached.Entries, cached.Embeddings, nil
	}

	var (
		entries    []core.Entry
		embeddings [][]float32
	)
	if cached != nil {
		entries, embeddings, err = m.partialUpdate(ctx, cached, currentHashes)
	} else {
		entries, embeddings, err = m.rebuild(ctx, dir)
	}
	if err != nil {
		return nil, nil, err
	}

	index := &core.Index{
		FileHashes: currentHashes,
		Entries:    entries,
		Embeddings: embeddings,
	}
	if err := core.ValidateIndex(index); err != nil {
		return nil, nil, err
	}

	if err := m.store.Save(dir, index); err != nil {
		return nil, nil, err
	}

	return entries, embeddings, nil
}

// rebuild parses the whole directory and embeds every entry in one batch.
func (m *Manager) rebuild(ctx context.Context, dir string) ([]core.Entry, [][]float32, error) {
	entries, err := ParseDirectory(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		m.logger.Debug("no entries parsed", "dir", dir)
		return nil, nil, nil
	}

	m.logger.Info("building index", "dir", dir, "entries", len(entries))
	embeddings, err := m.embedEntries(ctx, entries)
	if err != nil {
		return nil, nil, err
	}
	return entries, embeddings, nil
}

// partialUpdate retains entries and vectors from unchanged files and
// re-parses and re-embeds only the changed ones. Retained rows come first,
// preserving their cached order; new rows are appended in sorted-file
// order. Files removed from the directory fall out because nothing marks
// them unchanged.
func (m *Manager) partialUpdate(ctx context.Context, cached *core.Index, currentHashes map[string]string) ([]core.Entry, [][]float32, error) {
	unchanged := make(map[string]bool, len(currentHashes))
	var changed []string
	for path, digest := range currentHashes {
		if cached.FileHashes[path] == digest {
			unchanged[path] = true
		} else {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)

	var (
		kept     []core.Entry
		keptRows [][]float32
	)
	for i, entry := range cached.Entries {
		if unchanged[entry.SourceFile] {
			kept = append(kept, entry)
			keptRows = append(keptRows, cached.Embeddings[i])
		}
	}

	var newEntries []core.Entry
	for _, path := range changed {
		fileEntries, err := ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		newEntries = append(newEntries, fileEntries...)
	}

	m.logger.Info("updating index",
		"unchanged", len(unchanged), "changed", len(changed),
		"kept", len(kept), "new", len(newEntries))

	if len(newEntries) == 0 {
		return kept, keptRows, nil
	}

	newRows, err := m.embedEntries(ctx, newEntries)
	if err != nil {
		return nil, nil, err
	}

	return append(kept, newEntries...), append(keptRows, newRows...), nil
}

// embedEntries embeds the full text of every entry in a single batch call.
func (m *Manager) embedEntries(ctx context.Context, entries []core.Entry) ([][]float32, error) {
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.FullText
	}

	embeddings, err := m.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		m.logger.Error("error generating embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	if len(embeddings) != len(entries) {
		return nil, fmt.Errorf("embedding result mismatch. expected %d, received %d",
			len(entries), len(embeddings))
	}

	return embeddings, nil
}
