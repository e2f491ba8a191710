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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrMissingSourceFile indicates the SourceFile field is empty.
	ErrMissingSourceFile = errors.New("source file cannot be empty")

	// ErrInvalidIndex indicates an Index failed validation.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrRowCountMismatch indicates the embedding matrix is not aligned
	// with the entry sequence.
	ErrRowCountMismatch = errors.New("embedding row count does not match entry count")
)
