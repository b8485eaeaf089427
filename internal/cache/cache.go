// Package cache holds analysis snapshots keyed by (token, timeframe)
// for a bounded TTL.
package cache

import (
	"context"
	"time"

	"tokenlens/internal/domain"
)

// Store is the analysis cache behind the aggregation engine. Get returns
// (nil, nil) on a miss, which covers both absent and expired entries.
type Store interface {
	Get(ctx context.Context, key string) (*domain.Analysis, error)
	Set(ctx context.Context, key string, analysis *domain.Analysis, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// Key builds the composite cache key for a token/timeframe pair.
func Key(token, timeframe string) string {
	return token + ":" + timeframe
}
