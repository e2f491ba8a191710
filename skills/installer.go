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
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

const agentsFileName = "AGENTS.md"

// Installer copies built skill bundles into the agent skill directories
// under the user's home: ~/.claude/skills for Claude Code and
// ~/.agents/skills for the unified agents (opencode, pi, codex).
type Installer struct {
	buildRoot string
	skillsSrc string
	agentsMD  string
	home      string
	logger    *slog.Logger
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer) error

// WithInstallerHome overrides the home directory used for install
// targets. Default is os.UserHomeDir().
func WithInstallerHome(home string) InstallerOption {
	return func(ins *Installer) error {
		ins.home = home
		return nil
	}
}

// WithInstallerLogger sets a custom logger.
// Default is slog.Default().
func WithInstallerLogger(logger *slog.Logger) InstallerOption {
	return func(ins *Installer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ins.logger = logger
		return nil
	}
}

// NewInstaller creates an installer for the project rooted at root.
func NewInstaller(root string, opts ...InstallerOption) (*Installer, error) {
	if root == "" {
		return nil, ErrRootRequired
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	ins := &Installer{
		buildRoot: filepath.Join(root, "build"),
		skillsSrc: filepath.Join(root, "build", "skills"),
		agentsMD:  filepath.Join(root, "configs", agentsFileName),
		home:      home,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ins); optErr != nil {
			return nil, optErr
		}
	}

	return ins, nil
}

// targets maps a short target name to its skills directory.
func (ins *Installer) targets() map[string]string {
	return map[string]string{
		"claude":  filepath.Join(ins.home, ".claude", "skills"),
		"unified": filepath.Join(ins.home, ".agents", "skills"),
	}
}

// InstallSkills replaces each target skills directory with the current
// build output. Returns the number of skills installed per target.
func (ins *Installer) InstallSkills() (map[string]int, error) {
	skillEntries, err := os.ReadDir(ins.skillsSrc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNothingBuilt
		}
		return nil, fmt.Errorf("failed to read build output: %w", err)
	}

	targets := ins.targets()
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	installed := make(map[string]int, len(targets))
	for _, targetName := range names {
		dest := targets[targetName]

		if err := os.RemoveAll(dest); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", dest, err)
		}
		if err := os.MkdirAll(dest, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dest, err)
		}

		count := 0
		for _, skillEntry := range skillEntries {
			if !skillEntry.IsDir() {
				continue
			}

			src := filepath.Join(ins.skillsSrc, skillEntry.Name())
			if err := os.CopyFS(filepath.Join(dest, skillEntry.Name()), os.DirFS(src)); err != nil {
				return nil, fmt.Errorf("failed to install %s to %s: %w", skillEntry.Name(), dest, err)
			}
			count++
		}

		installed[targetName] = count
		ins.logger.Info("installed skills", "target", targetName, "count", count, "dest", dest)
	}

	return installed, nil
}

// InstallGlobalAgentsMD copies the project's configs/AGENTS.md to
// ~/.agents/AGENTS.md. Returns the destination path, or "" when the
// project has no configs/AGENTS.md.
func (ins *Installer) InstallGlobalAgentsMD() (string, error) {
	if _, err := os.Stat(ins.agentsMD); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ins.logger.Warn("no AGENTS.md found in configs, skipping")
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %s: %w", ins.agentsMD, err)
	}

	dest := filepath.Join(ins.home, ".agents", agentsFileName)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	if err := copyFile(ins.agentsMD, dest); err != nil {
		return "", fmt.Errorf("failed to install AGENTS.md: %w", err)
	}

	ins.logger.Info("installed global AGENTS.md", "dest", dest)
	return dest, nil
}

// Clean removes every installed artifact: the target skills
// directories, the build tree, and the global AGENTS.md.
func (ins *Installer) Clean() error {
	for _, dest := range ins.targets() {
		if err := os.RemoveAll(dest); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dest, err)
		}
	}

	if err := os.RemoveAll(ins.buildRoot); err != nil {
		return fmt.Errorf("failed to remove build directory: %w", err)
	}

	agentsPath := filepath.Join(ins.home, ".agents", agentsFileName)
	if err := os.Remove(agentsPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", agentsPath, err)
	}

	return nil
}
