package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be safe for concurrent use.
//
// The embedder is an explicit capability object: it is constructed once per
// process and injected into the components that need it. There is no hidden
// process-wide model state.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// single batch call, which amortizes model-invocation overhead. The
	// returned slice contains embeddings in the same order as the input
	// texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
