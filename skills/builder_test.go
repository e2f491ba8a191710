package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, name, skillMD string, extras map[string]string) {
	t.Helper()

	dir := filepath.Join(root, "skills", name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if skillMD != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(skillMD), 0644))
	}
	for rel, content := range extras {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func newTestBuilder(t *testing.T, root string) *Builder {
	t.Helper()

	builder, err := NewBuilder(root, WithBuilderPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(builder.Release)
	return builder
}

func TestNewBuilder(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := NewBuilder("")
		assert.Equal(t, ErrRootRequired, err)
	})
}

func TestBuilder_Build(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "search-learnings",
		"---\nname: wrong-name\ndescription: Search the learnings log\n---\n\n# Search\n",
		map[string]string{
			"learnings_pkg/searcher.md": "helper doc",
			"notes.txt":                 "extra file",
		})
	writeSkill(t, root, "code-review",
		"---\nname: code-review\n---\nbody\n", nil)
	writeSkill(t, root, "broken", "", nil) // no SKILL.md

	builder := newTestBuilder(t, root)
	built, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"code-review", "search-learnings"}, built)

	// Frontmatter name is forced to the directory name.
	rebuilt, err := os.ReadFile(filepath.Join(root, "build", "skills", "search-learnings", "SKILL.md"))
	require.NoError(t, err)
	fields := decodeFrontmatter(t, string(rebuilt))
	assert.Equal(t, "search-learnings", fields["name"])

	// Supporting files and subdirectories are copied.
	assert.FileExists(t, filepath.Join(root, "build", "skills", "search-learnings", "notes.txt"))
	assert.FileExists(t, filepath.Join(root, "build", "skills", "search-learnings", "learnings_pkg", "searcher.md"))

	// Skill without SKILL.md is not staged.
	assert.NoDirExists(t, filepath.Join(root, "build", "skills", "broken"))
}

func TestBuilder_Build_AppliesOverrides(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "search-learnings",
		"---\nname: search-learnings\ndescription: old\n---\nbody\n", nil)

	overrides := "[search-learnings]\ndescription = \"Search indexed learnings\"\n\"disable-model-invocation\" = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, overridesFileName), []byte(overrides), 0644))

	builder := newTestBuilder(t, root)
	_, err := builder.Build()
	require.NoError(t, err)

	rebuilt, err := os.ReadFile(filepath.Join(root, "build", "skills", "search-learnings", "SKILL.md"))
	require.NoError(t, err)
	fields := decodeFrontmatter(t, string(rebuilt))
	assert.Equal(t, "Search indexed learnings", fields["description"])
	assert.Equal(t, true, fields["disable-model-invocation"])
}

func TestBuilder_Build_RemovesStaleOutput(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "current", "---\nname: current\n---\nbody\n", nil)

	stale := filepath.Join(root, "build", "skills", "removed-skill")
	require.NoError(t, os.MkdirAll(stale, 0755))

	builder := newTestBuilder(t, root)
	built, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"current"}, built)
	assert.NoDirExists(t, stale)
}

func TestBuilder_Build_MissingSkillsDir(t *testing.T) {
	builder := newTestBuilder(t, t.TempDir())
	built, err := builder.Build()
	require.NoError(t, err)
	assert.Empty(t, built)
}

func TestBuilder_Build_MalformedOverrides(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "demo", "---\nname: demo\n---\nbody\n", nil)
	require.NoError(t, os.WriteFile(filepath.Join(root, overridesFileName), []byte("not [valid toml"), 0644))

	builder := newTestBuilder(t, root)
	_, err := builder.Build()
	assert.Error(t, err)
}
