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


// Package repo locates the learnings directory relative to the
// enclosing git repository.
package repo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindRoot returns the top-level directory of the git repository
// containing the current working directory.
func FindRoot(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", ErrNotGitRepository
	}
	return strings.TrimSpace(string(out)), nil
}

// LearningsDir returns <root>/docs/learnings, verifying it exists and
// is a directory.
func LearningsDir(root string) (string, error) {
	dir := filepath.Join(root, "docs", "learnings")

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w at %s", ErrNoLearningsDir, dir)
	}
	return dir, nil
}

// FindLearningsDir resolves the learnings directory for the git
// repository containing the current working directory.
func FindLearningsDir(ctx context.Context) (string, error) {
	root, err := FindRoot(ctx)
	if err != nil {
		return "", err
	}
	return LearningsDir(root)
}
