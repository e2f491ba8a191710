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


// Package ingestion turns learnings files into a searchable index.
//
// The package has two layers. The parser splits markdown documents into
// dated entries at "## [" headings and enumerates eligible files (flat
// *.md listing, README.md excluded). The Manager maintains the persisted
// index incrementally: it hashes every eligible file with BLAKE2b-256,
// compares against the cached hash map, and re-parses and re-embeds only
// files whose content changed, merging the fresh vectors with the retained
// cached rows. Embedding always happens in one batch call per update.
//
// The whole path is synchronous; one invocation performs one load-or-update
// to completion. Cache reads never fail (corruption is a rebuild), cache
// writes and embedding failures propagate to the caller.
package ingestion
