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
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterPattern matches a YAML frontmatter block at the very start
// of a document, capturing the content between the fences.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---`)

// FixFrontmatterName rewrites the frontmatter `name` field so it matches
// the skill's directory name. Documents without frontmatter, without a
// name field, or with a name that already matches are returned unchanged.
func FixFrontmatterName(content, expectedName string) string {
	mapping, loc, ok := parseFrontmatter(content)
	if !ok {
		return content
	}

	value := findMappingValue(mapping, "name")
	if value == nil {
		return content
	}

	current := strings.Trim(strings.TrimSpace(value.Value), `"'`)
	if current == expectedName {
		return content
	}

	value.SetString(expectedName)
	return renderFrontmatter(content, loc, mapping)
}

// ApplyFrontmatterOverrides adds or replaces frontmatter fields from the
// overrides map. Documents without frontmatter are returned unchanged.
func ApplyFrontmatterOverrides(content string, overrides map[string]any) string {
	if len(overrides) == 0 {
		return content
	}

	mapping, loc, ok := parseFrontmatter(content)
	if !ok {
		return content
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := setMappingValue(mapping, key, overrides[key]); err != nil {
			return content
		}
	}

	return renderFrontmatter(content, loc, mapping)
}

// parseFrontmatter extracts the frontmatter mapping node and the span of
// the raw frontmatter content within the document.
func parseFrontmatter(content string) (*yaml.Node, []int, bool) {
	m := frontmatterPattern.FindStringSubmatchIndex(content)
	if m == nil {
		return nil, nil, false
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content[m[2]:m[3]]), &doc); err != nil {
		return nil, nil, false
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil, false
	}

	return doc.Content[0], []int{m[2], m[3]}, true
}

// renderFrontmatter re-encodes the mapping and splices it back into the
// original document in place of the old frontmatter content.
func renderFrontmatter(content string, loc []int, mapping *yaml.Node) string {
	out, err := yaml.Marshal(mapping)
	if err != nil {
		return content
	}
	rendered := strings.TrimRight(string(out), "\n")
	return content[:loc[0]] + rendered + content[loc[1]:]
}

// findMappingValue returns the value node for key, or nil.
func findMappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces the value for key, or appends a new pair.
func setMappingValue(mapping *yaml.Node, key string, value any) error {
	encoded := &yaml.Node{}
	if err := encoded.Encode(value); err != nil {
		return err
	}

	if existing := findMappingValue(mapping, key); existing != nil {
		*existing = *encoded
		return nil
	}

	keyNode := &yaml.Node{}
	keyNode.SetString(key)
	mapping.Content = append(mapping.Content, keyNode, encoded)
	return nil
}
