package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyEmbedder fails a fixed number of times before succeeding.
type flakyEmbedder struct {
	failures int
	calls    int
}

func (f *flakyEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return []float32{1, 0}, nil
}

func (f *flakyEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func newFastRetry(t *testing.T, inner Embedder, attempts int) *RetryEmbedder {
	t.Helper()

	r, err := NewRetryEmbedder(inner,
		WithMaxAttempts(attempts),
		WithRetryDelay(time.Millisecond))
	require.NoError(t, err)
	return r
}

func TestNewRetryEmbedder(t *testing.T) {
	t.Run("nil inner", func(t *testing.T) {
		_, err := NewRetryEmbedder(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("defaults", func(t *testing.T) {
		r, err := NewRetryEmbedder(&flakyEmbedder{})
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxAttempts, r.maxAttempts)
		assert.Equal(t, DefaultRetryDelay, r.baseDelay)
	})
}

func TestRetryEmbedder_SucceedsAfterFailures(t *testing.T) {
	inner := &flakyEmbedder{failures: 2}
	r := newFastRetry(t, inner, 3)

	vectors, err := r.EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryEmbedder_ExhaustsAttempts(t *testing.T) {
	inner := &flakyEmbedder{failures: 10}
	r := newFastRetry(t, inner, 3)

	_, err := r.EmbedText(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryEmbedder_FirstAttemptSucceeds(t *testing.T) {
	inner := &flakyEmbedder{}
	r := newFastRetry(t, inner, 3)

	vector, err := r.EmbedText(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vector)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryEmbedder_ContextCancelled(t *testing.T) {
	inner := &flakyEmbedder{failures: 10}
	r := newFastRetry(t, inner, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.EmbedText(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
