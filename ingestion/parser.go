package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/buildrtech/dotagents/core"
)

// entryHeadingPattern marks the start of a learnings entry: a level-2
// heading whose text opens with a bracket, e.g. "## [2026-02-12] Title".
// The marker is part of the contract with the learnings corpus and must
// not change silently.
var entryHeadingPattern = regexp.MustCompile(`(?m)^## \[`)

const (
	markdownExt  = ".md"
	excludedFile = "readme.md"
)

// EligibleFiles returns the markdown files to index in dir, sorted
// lexicographically. A file named README.md (any casing) is excluded, and
// subdirectories are not descended into. A missing directory yields an
// empty list, not an error.
func EligibleFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if !strings.HasSuffix(name, markdownExt) {
			continue
		}
		if strings.ToLower(name) == excludedFile {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)
	return files, nil
}

// ParseFile splits a single markdown document into entries at entry
// headings. Text before the first heading is discarded. A file without
// headings yields an empty slice, not an error.
func ParseFile(path string) ([]core.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseDocument(string(data), path), nil
}

// ParseDirectory parses every eligible file in dir in sorted order,
// concatenating the entries in that order.
func ParseDirectory(dir string) ([]core.Entry, error) {
	files, err := EligibleFiles(dir)
	if err != nil {
		return nil, err
	}

	var entries []core.Entry
	for _, path := range files {
		fileEntries, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

func parseDocument(text, path string) []core.Entry {
	headings := entryHeadingPattern.FindAllStringIndex(text, -1)

	entries := make([]core.Entry, 0, len(headings))
	for i, loc := range headings {
		end := len(text)
		if i+1 < len(headings) {
			end = headings[i+1][0]
		}

		segment := strings.TrimSpace(text[loc[0]:end])
		title, body, _ := strings.Cut(segment, "\n")
		entries = append(entries, core.NewEntry(
			strings.TrimSpace(title),
			strings.TrimSpace(body),
			path,
		))
	}
	return entries
}
