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


package ai

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultMaxAttempts is the default number of attempts per
	// embedding call.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the default base delay for exponential
	// backoff between attempts.
	DefaultRetryDelay = 1 * time.Second
)

// RetryEmbedder wraps an Embedder and retries failed calls with
// exponential backoff.
type RetryEmbedder struct {
	inner       Embedder
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// RetryOption configures a RetryEmbedder.
type RetryOption func(*RetryEmbedder)

// WithMaxAttempts sets the maximum number of attempts per call.
func WithMaxAttempts(attempts int) RetryOption {
	return func(r *RetryEmbedder) {
		if attempts > 0 {
			r.maxAttempts = attempts
		}
	}
}

// WithRetryDelay sets the base delay for exponential backoff.
func WithRetryDelay(delay time.Duration) RetryOption {
	return func(r *RetryEmbedder) {
		if delay > 0 {
			r.baseDelay = delay
		}
	}
}

// WithRetryLogger sets a custom logger.
// Default is slog.Default().
func WithRetryLogger(logger *slog.Logger) RetryOption {
	return func(r *RetryEmbedder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetryEmbedder wraps inner with retry behavior.
func NewRetryEmbedder(inner Embedder, opts ...RetryOption) (*RetryEmbedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}

	r := &RetryEmbedder{
		inner:       inner,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultRetryDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// EmbedText embeds a single text, retrying transient failures.
func (r *RetryEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var result []float32
	err := r.retry(ctx, func() error {
		var callErr error
		result, callErr = r.inner.EmbedText(ctx, text)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EmbedTexts embeds a batch of texts, retrying transient failures.
func (r *RetryEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	var result [][]float32
	err := r.retry(ctx, func() error {
		var callErr error
		result, callErr = r.inner.EmbedTexts(ctx, texts)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// retry runs operation up to maxAttempts times with exponential
// backoff. Returns the error from the last attempt if all fail.
func (r *RetryEmbedder) retry(ctx context.Context, operation func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				r.logger.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		r.logger.Debug("embedding failed, will retry",
			"attempt", attempt, "maxAttempts", r.maxAttempts, "error", lastErr)

		if attempt == r.maxAttempts {
			break
		}

		// baseDelay * 2^(attempt-1)
		delay := r.baseDelay
		for i := 1; i < attempt; i++ {
			delay *= 2
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
