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


package skills

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/panjf2000/ants/v2"
)

const (
	skillFileName     = "SKILL.md"
	overridesFileName = "skill-overrides.toml"
)

// Builder assembles skill bundles from a project's skills/ tree into
// build/skills/. Independent skills are built concurrently on a worker
// pool.
type Builder struct {
	skillsDir     string
	buildDir      string
	overridesPath string
	pool          *ants.Pool
	logger        *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithBuilderPoolSize sets the worker pool size for concurrent builds.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithBuilderPoolSize(size int) BuilderOption {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		b.pool = pool
		return nil
	}
}

// WithBuilderLogger sets a custom logger.
// Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a builder rooted at the given project directory.
// Skills are read from <root>/skills, overrides from
// <root>/skill-overrides.toml, and bundles are written to
// <root>/build/skills.
func NewBuilder(root string, opts ...BuilderOption) (*Builder, error) {
	if root == "" {
		return nil, ErrRootRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		skillsDir:     filepath.Join(root, "skills"),
		buildDir:      filepath.Join(root, "build", "skills"),
		overridesPath: filepath.Join(root, overridesFileName),
		pool:          pool,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Build removes any previous build output and rebuilds every skill
// directory under skills/. Directories without a SKILL.md are skipped
// with a warning. Returns the names of the skills built, sorted.
func (b *Builder) Build() ([]string, error) {
	if err := os.RemoveAll(b.buildDir); err != nil {
		return nil, fmt.Errorf("failed to clear build directory: %w", err)
	}
	if err := os.MkdirAll(b.buildDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create build directory: %w", err)
	}

	overrides, err := b.loadOverrides()
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(b.skillsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read skills directory: %w", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		built    []string
		firstErr error
	)

	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}

		name := dirEntry.Name()
		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()

			ok, buildErr := b.buildSkill(name, overrides[name])

			mu.Lock()
			defer mu.Unlock()
			if buildErr != nil {
				if firstErr == nil {
					firstErr = buildErr
				}
				return
			}
			if ok {
				built = append(built, name)
			}
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Strings(built)
	b.logger.Info("built skills", "count", len(built))
	return built, nil
}

// buildSkill copies one skill directory into the build tree, rewriting
// the SKILL.md frontmatter on the way. Returns false when the source
// directory has no SKILL.md.
func (b *Builder) buildSkill(name string, overrides map[string]any) (bool, error) {
	source := filepath.Join(b.skillsDir, name)

	raw, err := os.ReadFile(filepath.Join(source, skillFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.logger.Warn("skill has no SKILL.md, skipping", "skill", name)
			return false, nil
		}
		return false, fmt.Errorf("failed to read SKILL.md for %s: %w", name, err)
	}

	dest := filepath.Join(b.buildDir, name)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return false, fmt.Errorf("failed to create build directory for %s: %w", name, err)
	}

	content := FixFrontmatterName(string(raw), name)
	content = ApplyFrontmatterOverrides(content, overrides)

	if err := os.WriteFile(filepath.Join(dest, skillFileName), []byte(content), 0644); err != nil {
		return false, fmt.Errorf("failed to write SKILL.md for %s: %w", name, err)
	}

	items, err := os.ReadDir(source)
	if err != nil {
		return false, fmt.Errorf("failed to read skill directory %s: %w", name, err)
	}

	for _, item := range items {
		if item.Name() == skillFileName {
			continue
		}

		src := filepath.Join(source, item.Name())
		dst := filepath.Join(dest, item.Name())

		if item.IsDir() {
			err = os.CopyFS(dst, os.DirFS(src))
		} else {
			err = copyFile(src, dst)
		}
		if err != nil {
			return false, fmt.Errorf("failed to copy %s for %s: %w", item.Name(), name, err)
		}
	}

	return true, nil
}

// loadOverrides reads per-skill frontmatter overrides. A missing
// overrides file is not an error.
func (b *Builder) loadOverrides() (map[string]map[string]any, error) {
	overrides := make(map[string]map[string]any)
	if _, err := toml.DecodeFile(b.overridesPath, &overrides); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load skill overrides: %w", err)
	}
	return overrides, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
