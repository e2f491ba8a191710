// Package mock provides test doubles for the ai package interfaces.
//
// MockEmbedder generates deterministic pseudo-random unit vectors from a
// hash of the input text, so tests get stable similarity scores without an
// external embedding service. Behavior can be overridden per test via the
// EmbedTextFunc and EmbedTextsFunc fields.
package mock
