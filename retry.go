package lendon

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// RetryConfig controls how failed generation calls are retried.
type RetryConfig struct {
	MaxRetries int           // Retries after the first attempt
	BaseDelay  time.Duration // Wait before the first retry, doubled for each further one
	MaxDelay   time.Duration // Upper bound for any single wait, Retry-After included
}

// DefaultRetryConfig returns the retry policy used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// delay is the wait before retry number attempt (0-based). A server
// suggested Retry-After replaces the exponential backoff.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	d := c.BaseDelay << uint(attempt)

	var providerErr *ProviderError
	if errors.As(err, &providerErr) && providerErr.RetryAfter > 0 {
		d = providerErr.RetryAfter
	}

	if d <= 0 || d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// IsRetryable reports whether a failed generation is worth another attempt.
// Only provider errors marked retryable qualify, also when wrapped in a
// GenerationFailure. Cancellation and deadlines never do.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Retryable
}

// RetryableGenerator retries transient failures of the wrapped Generator
// with exponential backoff.
type RetryableGenerator struct {
	generator Generator
	config    RetryConfig
	logger    *zap.Logger
}

// RetryOption configures a RetryableGenerator.
type RetryOption func(*RetryableGenerator)

// WithRetryLogger logs every retry with the request id and the wait.
func WithRetryLogger(logger *zap.Logger) RetryOption {
	return func(g *RetryableGenerator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewRetryableGenerator wraps generator with the given retry policy.
func NewRetryableGenerator(generator Generator, cfg RetryConfig, opts ...RetryOption) *RetryableGenerator {
	g := &RetryableGenerator{
		generator: generator,
		config:    cfg,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate calls the wrapped generator until it succeeds, fails for good or
// runs out of retries. It returns the last failure without waiting when the
// context deadline would pass before the next attempt.
func (g *RetryableGenerator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return GenerationResult{}, err
		}

		result, err := g.generator.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		if attempt >= g.config.MaxRetries || !IsRetryable(err) {
			return GenerationResult{}, err
		}

		wait := g.config.delay(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			g.logger.Debug("retry abandoned, deadline too close",
				zap.String("request_id", req.ID),
				zap.Duration("wait", wait),
			)
			return GenerationResult{}, err
		}

		g.logger.Info("retrying generation",
			zap.String("request_id", req.ID),
			zap.Int("retry", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return GenerationResult{}, ctx.Err()
		case <-timer.C:
		}
	}
}
