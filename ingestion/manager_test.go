package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/buildrtech/dotagents/ai/mock"
	"github.com/buildrtech/dotagents/storage/cachefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *mock.MockEmbedder) {
	t.Helper()
	embedder := mock.NewMockEmbedder()
	manager, err := NewManager(embedder, cachefile.NewStore())
	require.NoError(t, err)
	return manager, embedder
}

func TestNewManager(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		manager, err := NewManager(mock.NewMockEmbedder(), cachefile.NewStore())
		require.NoError(t, err)
		assert.NotNil(t, manager)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewManager(nil, cachefile.NewStore())
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewManager(mock.NewMockEmbedder(), nil)
		assert.Equal(t, ErrStoreRequired, err)
	})
}

func TestLoadOrUpdate_FullBuild(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)
	writeFile(t, dir, "workflow.md", workflow)

	manager, embedder := newTestManager(t)

	entries, embeddings, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Len(t, embeddings, 4)
	assert.Equal(t, 1, embedder.CallCount(), "all entries embedded in one batch")
	assert.FileExists(t, cachefile.Path(dir))
}

func TestLoadOrUpdate_CacheHit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)

	manager, embedder := newTestManager(t)

	first, firstRows, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	require.Equal(t, 1, embedder.CallCount())

	second, secondRows, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)

	assert.Equal(t, 1, embedder.CallCount(), "cache hit must not call the embedder")
	assert.Equal(t, first, second)
	assert.Equal(t, firstRows, secondRows)
}

func TestLoadOrUpdate_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	bugsPath := writeFile(t, dir, "bugs.md", bugsAndGotchas)
	writeFile(t, dir, "workflow.md", workflow)

	manager, embedder := newTestManager(t)

	entries, embeddings, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	workflowRows := embeddings[2:4]

	// Append one entry to bugs.md only.
	appended := bugsAndGotchas + `
## [2026-02-13] Terraform state locking with DynamoDB

Context: Two CI jobs ran terraform apply simultaneously and corrupted state.
Lesson: Always configure DynamoDB state locking for shared Terraform backends.
`
	require.NoError(t, os.WriteFile(bugsPath, []byte(appended), 0644))
	embedder.Reset()

	entries, embeddings, err = manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	require.Len(t, embeddings, 6)

	// Retained entries keep their cached order and vectors; re-parsed bugs.md
	// entries are appended after them.
	assert.Contains(t, entries[0].Title, "Pre-push hooks")
	assert.Contains(t, entries[1].Title, "rebase before merging")
	assert.Equal(t, workflowRows, embeddings[0:2])
	assert.Contains(t, entries[5].Title, "Terraform state locking")

	// Only the changed file's entries were re-embedded, in one batch.
	assert.Equal(t, 1, embedder.CallCount())
	assert.Len(t, embedder.EmbeddedTexts(), 3)
	for _, text := range embedder.EmbeddedTexts() {
		assert.NotContains(t, text, "Pre-push hooks")
	}
}

func TestLoadOrUpdate_FileDeletion(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)
	workflowPath := writeFile(t, dir, "workflow.md", workflow)

	manager, _ := newTestManager(t)

	entries, _, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	require.NoError(t, os.Remove(workflowPath))

	entries, embeddings, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Len(t, embeddings, 2)
	for _, entry := range entries {
		assert.NotEqual(t, workflowPath, entry.SourceFile)
	}
}

func TestLoadOrUpdate_Force(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)

	manager, embedder := newTestManager(t)

	_, _, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	require.Equal(t, 1, embedder.CallCount())

	_, _, err = manager.LoadOrUpdate(ctx, dir, true)
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.CallCount(), "force ignores the cache")
}

func TestLoadOrUpdate_EmptyDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	manager, embedder := newTestManager(t)

	entries, embeddings, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, embeddings)
	assert.Zero(t, embedder.CallCount())
	assert.NoFileExists(t, cachefile.Path(dir), "no cache write without eligible files")
}

func TestLoadOrUpdate_FilesWithoutEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "# Prose only\n\nNo entry headings here.\n")

	manager, embedder := newTestManager(t)

	entries, embeddings, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, embeddings)
	assert.Zero(t, embedder.CallCount())
	assert.FileExists(t, cachefile.Path(dir), "hashes persist so the next run is a cache hit")

	// And the next run is indeed a hit.
	_, _, err = manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	assert.Zero(t, embedder.CallCount())
}

func TestLoadOrUpdate_CorruptCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)

	manager, embedder := newTestManager(t)

	_, _, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cachefile.Path(dir), []byte("garbage"), 0644))
	embedder.Reset()

	entries, _, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err, "corruption is silently treated as a miss")
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, embedder.CallCount(), "full rebuild after corruption")
}

func TestLoadOrUpdate_ReadmeExcluded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)
	readmePath := writeFile(t, dir, "README.md", "## [2026-02-14] Ignored\n\nBody.\n")

	manager, _ := newTestManager(t)

	entries, _, err := manager.LoadOrUpdate(ctx, dir, false)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	loaded, ok := cachefile.NewStore().Load(dir)
	require.True(t, ok)
	assert.NotContains(t, loaded.FileHashes, readmePath)
}

func TestLoadOrUpdate_EmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "bugs.md", bugsAndGotchas)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("model unavailable")
	}
	manager, err := NewManager(embedder, cachefile.NewStore())
	require.NoError(t, err)

	_, _, err = manager.LoadOrUpdate(ctx, dir, false)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, cachefile.CacheFileName),
		"no partial index is persisted on embedding failure")
}
