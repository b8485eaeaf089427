package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TokenRefresher re-fetches one token's analysis, bypassing the cache.
type TokenRefresher interface {
	RefreshToken(ctx context.Context, token, timeframe string) error
}

// WatchlistRefresher keeps a configured set of tokens warm in the cache by
// refreshing them on an interval.
type WatchlistRefresher struct {
	tracer       trace.Tracer
	analysis     TokenRefresher
	tokens       []string
	timeframe    string
	pollInterval time.Duration
}

func NewWatchlistRefresher(tracer trace.Tracer, analysis TokenRefresher, tokens []string, timeframe string, pollIntervalSecs int) *WatchlistRefresher {
	return &WatchlistRefresher{
		tracer:       tracer,
		analysis:     analysis,
		tokens:       tokens,
		timeframe:    timeframe,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start refreshes the watchlist immediately, then on every tick. Blocks
// until ctx is cancelled.
func (w *WatchlistRefresher) Start(ctx context.Context) {
	if len(w.tokens) == 0 {
		log.Println("Watchlist empty, refresher not starting")
		return
	}
	log.Printf("Watchlist refresher starting for %d tokens...", len(w.tokens))

	w.refreshAll(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Watchlist refresher stopped")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *WatchlistRefresher) refreshAll(ctx context.Context) {
	ctx, span := w.tracer.Start(ctx, "watchlist.refresh-all")
	defer span.End()

	for _, token := range w.tokens {
		if err := w.analysis.RefreshToken(ctx, token, w.timeframe); err != nil {
			log.Printf("watchlist refresh error for %s: %v", token, err)
		}
	}
}
