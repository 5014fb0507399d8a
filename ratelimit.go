package lendon

import (
	"context"
	"math"
	"sync"
	"time"
)

// defaultRequestsPerMinute is the Gemini free-tier quota.
const defaultRequestsPerMinute = 15

// RateLimitConfig paces generation calls against the model quota.
type RateLimitConfig struct {
	RequestsPerMinute int // Quota; defaultRequestsPerMinute when unset
	BurstSize         int // Calls allowed back to back; RequestsPerMinute when unset
}

// RateLimiter is a token bucket. Priority callers are served before the
// others whenever both are waiting for a token.
type RateLimiter struct {
	mu        sync.Mutex
	tokens    float64
	burst     float64
	perSecond float64
	last      time.Time
	priority  int // Priority callers currently waiting
	now       func() time.Time
}

// NewRateLimiter creates a limiter with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}

	r := &RateLimiter{
		tokens:    float64(burst),
		burst:     float64(burst),
		perSecond: float64(rpm) / 60,
		now:       time.Now,
	}
	r.last = r.now()
	return r
}

// Acquire blocks until a token is taken or ctx is done. A caller without
// priority also waits while any priority caller is queued.
func (r *RateLimiter) Acquire(ctx context.Context, priority bool) error {
	if priority {
		r.mu.Lock()
		r.priority++
		r.mu.Unlock()
		defer func() {
			r.mu.Lock()
			r.priority--
			r.mu.Unlock()
		}()
	}

	for {
		wait, ok := r.take(priority)
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// take consumes a token, or reports how long until the bucket gains one.
func (r *RateLimiter) take(priority bool) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refillLocked()
	if r.tokens >= 1 && (priority || r.priority == 0) {
		r.tokens--
		return 0, true
	}

	missing := math.Floor(r.tokens) + 1 - r.tokens
	wait := time.Duration(missing / r.perSecond * float64(time.Second))
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	return wait, false
}

func (r *RateLimiter) refillLocked() {
	now := r.now()
	r.tokens = math.Min(r.burst, r.tokens+now.Sub(r.last).Seconds()*r.perSecond)
	r.last = now
}

// Available returns the tokens currently in the bucket.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refillLocked()
	return r.tokens
}

// RateLimitedGenerator paces calls to the wrapped Generator. Regenerations
// take priority over new submissions.
type RateLimitedGenerator struct {
	generator Generator
	limiter   *RateLimiter
}

// NewRateLimitedGenerator wraps generator with a limiter built from cfg.
func NewRateLimitedGenerator(generator Generator, cfg RateLimitConfig) *RateLimitedGenerator {
	return &RateLimitedGenerator{
		generator: generator,
		limiter:   NewRateLimiter(cfg),
	}
}

// Generate waits for a token, then calls the wrapped generator.
func (g *RateLimitedGenerator) Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error) {
	if err := g.limiter.Acquire(ctx, IsRegeneration(ctx)); err != nil {
		return GenerationResult{}, &ProviderError{Message: "rate limit wait cancelled", Cause: err}
	}
	return g.generator.Generate(ctx, req)
}
