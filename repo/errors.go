package repo

import "errors"

var (
	// ErrNotGitRepository indicates the working directory is not inside
	// a git repository.
	ErrNotGitRepository = errors.New("not inside a git repository")

	// ErrNoLearningsDir indicates the repository has no docs/learnings
	// directory.
	ErrNoLearningsDir = errors.New("no docs/learnings/ directory found")
)
