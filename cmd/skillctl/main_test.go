package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	skillDir := filepath.Join(root, "skills", "search-learnings")
	require.NoError(t, os.MkdirAll(skillDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(skillDir, "SKILL.md"),
		[]byte("---\nname: search-learnings\n---\nbody\n"), 0644))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run([]string{"skillctl", "--root", root, "build"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Building skills...")
	assert.Contains(t, out.String(), "search-learnings")
	assert.Contains(t, out.String(), "Built 1 skills")
	assert.FileExists(t, filepath.Join(root, "build", "skills", "search-learnings", "SKILL.md"))
}

func TestBuildCommand_EmptyProject(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run([]string{"skillctl", "--root", t.TempDir(), "build"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Built 0 skills")
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"skillctl", "--log-level", "noisy", "build"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
