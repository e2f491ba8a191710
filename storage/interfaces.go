package storage

import "github.com/buildrtech/dotagents/core"

// IndexStore persists the search index for a learnings directory.
//
// A store keeps exactly one artifact per directory. Concurrent invocations
// against the same directory are not coordinated: the last writer wins.
type IndexStore interface {
	// Load reads the persisted index for dir. A missing artifact, a decode
	// failure or a structurally invalid record are all reported as a miss
	// (ok == false), never as an error.
	Load(dir string) (index *core.Index, ok bool)

	// Save persists the index for dir, overwriting any prior artifact.
	// Write failures are returned to the caller.
	Save(dir string, index *core.Index) error
}
