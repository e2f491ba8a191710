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


package core

import "fmt"

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - SourceFile must not be empty
//
// NOT validated:
//   - Content (may legitimately be empty)
//   - FullText (derived from Title and Content by NewEntry)
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTitle)
	}

	if entry.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrMissingSourceFile)
	}

	return nil
}

// ValidateIndex validates the structural invariants of an Index.
//
// Validation rules:
//   - Embeddings must be positionally aligned with Entries (equal length,
//     or both empty)
//
// A loaded cache that fails this check must be treated as a cache miss,
// never surfaced to the user.
func ValidateIndex(index *Index) error {
	if index == nil {
		return fmt.Errorf("%w: index is nil", ErrInvalidIndex)
	}

	if len(index.Embeddings) != len(index.Entries) {
		return fmt.Errorf("%w: %w (%d entries, %d rows)",
			ErrInvalidIndex, ErrRowCountMismatch, len(index.Entries), len(index.Embeddings))
	}

	return nil
}
