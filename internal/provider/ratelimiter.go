package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket guarding calls to an upstream API.
// Each adapter owns one, sized for that provider's published limits.
type RateLimiter struct {
	mu          sync.Mutex
	tokens      int
	maxTokens   int
	refillEvery time.Duration
	lastRefill  time.Time
}

// NewRateLimiter allows a burst of maxTokens calls, then one call per
// refillEvery window.
func NewRateLimiter(maxTokens int, refillEvery time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:      maxTokens,
		maxTokens:   maxTokens,
		refillEvery: refillEvery,
		lastRefill:  time.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.refillEvery):
		}
	}
}

func (r *RateLimiter) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastRefill)
	if refilled := int(elapsed / r.refillEvery); refilled > 0 {
		r.tokens += refilled
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(refilled) * r.refillEvery)
	}

	if r.tokens > 0 {
		r.tokens--
		return true
	}
	return false
}
