package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	t.Run("with content", func(t *testing.T) {
		entry := NewEntry("## [2026-02-12] Title", "Context: something.", "docs/learnings/bugs.md")

		assert.Equal(t, "## [2026-02-12] Title", entry.Title)
		assert.Equal(t, "Context: something.", entry.Content)
		assert.Equal(t, "docs/learnings/bugs.md", entry.SourceFile)
		assert.Equal(t, "## [2026-02-12] Title\nContext: something.", entry.FullText)
	})

	t.Run("without content", func(t *testing.T) {
		entry := NewEntry("## [2026-02-12] Title", "", "docs/learnings/bugs.md")

		assert.Empty(t, entry.Content)
		assert.Equal(t, "## [2026-02-12] Title", entry.FullText)
	})
}

func TestNewIndex(t *testing.T) {
	index := NewIndex()

	assert.NotNil(t, index.FileHashes)
	assert.Empty(t, index.Entries)
	assert.Empty(t, index.Embeddings)
	assert.NoError(t, ValidateIndex(index))
}
