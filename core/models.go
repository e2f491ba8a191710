package core

// Entry is one titled knowledge snippet extracted from a learnings file.
// Entries are immutable once parsed. Identity for cache merging is the
// SourceFile an entry came from; entries are not individually hashed.
type Entry struct {
	Title      string
	Content    string
	SourceFile string
	FullText   string // exact text handed to the embedder
}

// NewEntry builds an Entry from a heading line and body text.
// FullText is the title alone when the body is empty, otherwise the title
// and body joined by a single newline.
func NewEntry(title, content, sourceFile string) Entry {
	fullText := title
	if content != "" {
		fullText = title + "\n" + content
	}
	return Entry{
		Title:      title,
		Content:    content,
		SourceFile: sourceFile,
		FullText:   fullText,
	}
}

// Index is the searchable state for one learnings directory.
//
// Entries keeps file processing order (lexicographic path order), which is
// stable across runs for unchanged files. Embeddings is positionally aligned
// with Entries: row i is the vector for Entries[i].
type Index struct {
	FileHashes map[string]string
	Entries    []Entry
	Embeddings [][]float32
}

// NewIndex creates an empty Index with an initialized hash map.
func NewIndex() *Index {
	return &Index{FileHashes: map[string]string{}}
}

// SearchResult is a scored entry returned from a similarity search.
type SearchResult struct {
	Entry Entry
	Score float64
}
