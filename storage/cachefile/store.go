package cachefile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/buildrtech/dotagents/core"
	"github.com/buildrtech/dotagents/storage"
)

// CacheFileName is the fixed dotfile holding the serialized index, one per
// learnings directory. The name is part of the on-disk contract.
const CacheFileName = ".learnings_index"

// Store persists the index as a single dotfile colocated with the learnings
// directory.
type Store struct {
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates a dotfile-backed index store.
//
// Returns storage.IndexStore interface to enforce abstraction.
func NewStore(opts ...Option) storage.IndexStore {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the cache artifact path for a learnings directory.
func Path(dir string) string {
	return filepath.Join(dir, CacheFileName)
}

// Load reads the persisted index for dir. Every failure mode is a miss.
func (s *Store) Load(dir string) (*core.Index, bool) {
	path := Path(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("cache file unreadable, treating as miss", "path", path, "err", err)
		}
		return nil, false
	}

	index, err := storage.UnmarshalIndex(data)
	if err != nil {
		s.logger.Debug("cache file invalid, treating as miss", "path", path, "err", err)
		return nil, false
	}

	return index, true
}

// Save persists the index for dir, overwriting any prior artifact.
func (s *Store) Save(dir string, index *core.Index) error {
	path := Path(dir)

	if err := os.WriteFile(path, storage.MarshalIndex(index), 0644); err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}

	s.logger.Debug("cache written", "path", path,
		"files", len(index.FileHashes), "entries", len(index.Entries))
	return nil
}
