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


// Package skills builds and installs skill bundles for AI coding agents.
//
// A skill is a directory under the project's skills/ tree containing a
// SKILL.md with YAML frontmatter plus any supporting files. Building
// normalizes the frontmatter name to the directory name, applies
// per-skill overrides from skill-overrides.toml, and stages the result
// under build/skills. Installing replicates the staged bundles into
// each agent's skills directory.
package skills
