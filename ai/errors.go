package ai

import "errors"

// ErrEmbedderRequired indicates a nil embedder was provided.
var ErrEmbedderRequired = errors.New("embedder is required")
