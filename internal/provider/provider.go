package provider

import (
	"context"
	"fmt"

	"tokenlens/internal/domain"
)

// Source is the uniform contract all market data providers implement.
// FetchMarketData fails loudly so the engine can fall back to the next
// source in its chain. FetchTokenInfo is best-effort: a non-success
// response is reported as (nil, nil) rather than an error.
type Source interface {
	Name() string
	FetchMarketData(ctx context.Context, token string) (*domain.MarketData, error)
	FetchTokenInfo(ctx context.Context, token string) (*domain.TokenInfo, error)
}

// APIError is a non-success response from an upstream provider API.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Body)
}
