package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *Entry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &Entry{
				Title:      "## [2026-02-12] Something learned",
				Content:    "Lesson: details.",
				SourceFile: "docs/learnings/bugs.md",
				FullText:   "## [2026-02-12] Something learned\nLesson: details.",
			},
		},
		{
			name: "valid entry without content",
			entry: &Entry{
				Title:      "## [2026-02-12] Something learned",
				SourceFile: "docs/learnings/bugs.md",
				FullText:   "## [2026-02-12] Something learned",
			},
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidEntry,
		},
		{
			name: "empty title",
			entry: &Entry{
				SourceFile: "docs/learnings/bugs.md",
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "missing source file",
			entry: &Entry{
				Title: "## [2026-02-12] Something learned",
			},
			wantErr: ErrMissingSourceFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIndex(t *testing.T) {
	t.Run("nil index", func(t *testing.T) {
		assert.ErrorIs(t, ValidateIndex(nil), ErrInvalidIndex)
	})

	t.Run("empty index", func(t *testing.T) {
		assert.NoError(t, ValidateIndex(NewIndex()))
	})

	t.Run("aligned rows", func(t *testing.T) {
		index := &Index{
			FileHashes: map[string]string{"a.md": "h1"},
			Entries:    []Entry{NewEntry("## [2026-01-01] A", "", "a.md")},
			Embeddings: [][]float32{{0.1, 0.2}},
		}
		assert.NoError(t, ValidateIndex(index))
	})

	t.Run("row count mismatch", func(t *testing.T) {
		index := &Index{
			FileHashes: map[string]string{"a.md": "h1"},
			Entries:    []Entry{NewEntry("## [2026-01-01] A", "", "a.md")},
			Embeddings: [][]float32{},
		}
		assert.ErrorIs(t, ValidateIndex(index), ErrRowCountMismatch)
	})
}
