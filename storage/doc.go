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


// Package storage provides persistence for the learnings search index.
//
// The package defines the IndexStore interface plus the binary codec for
// the cache artifact. The codec is a versioned mus-format record holding
// the file hash map, the entries and the embedding matrix; float32 vector
// values round-trip bit-for-bit.
//
// Corruption tolerance is a deliberate property of the contract: Load never
// fails. A missing artifact, an unreadable file, a version mismatch,
// trailing bytes or a violated row-count invariant all surface as a cache
// miss, which makes the caller rebuild from source files.
//
// # Implementation Packages
//
//   - storage/cachefile: single-dotfile store colocated with the learnings
//     directory
package storage
