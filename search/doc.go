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


// Package search ranks learnings entries by semantic similarity.
//
// The Searcher embeds one or more query strings in a single batch, scores
// every entry by its best cosine similarity across the queries, filters by
// a similarity threshold and returns the top-N results in descending score
// order. Ties keep the order entries hold in the index.
package search
