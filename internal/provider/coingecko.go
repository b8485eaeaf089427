package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tokenlens/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coingeckoDefaultBaseURL = "https://api.coingecko.com/api/v3"

// CoinGecko fetches market data and token metadata from the CoinGecko API.
// It is the primary source in the fallback chain.
type CoinGecko struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGecko creates the adapter with built-in rate limiting.
// Rate limited to 8 requests per minute (one token every 7.5 seconds).
func NewCoinGecko(baseURL, apiKey string, tracer trace.Tracer) *CoinGecko {
	if baseURL == "" {
		baseURL = coingeckoDefaultBaseURL
	}
	return &CoinGecko{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
	}
}

func (p *CoinGecko) Name() string { return "coingecko" }

// FetchMarketData fetches the current price snapshot for a single token id.
// A success response that carries no entry for the token yields (nil, nil);
// the engine treats that the same as a failure and moves on.
func (p *CoinGecko) FetchMarketData(ctx context.Context, token string) (*domain.MarketData, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-market-data")
	defer span.End()

	id := strings.ToLower(token)
	reqURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_market_cap=true&include_24hr_vol=true&include_24hr_change=true",
		p.baseURL, url.QueryEscape(id))

	body, err := p.doRequest(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch market data: %w", err)
	}

	// Response shape: {"solana": {"usd": 150, "usd_market_cap": ..., "usd_24h_vol": ..., "usd_24h_change": ...}}
	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse market data: %w", err)
	}

	data, ok := raw[id]
	if !ok {
		return nil, nil
	}

	return &domain.MarketData{
		Price:          data["usd"],
		MarketCap:      data["usd_market_cap"],
		Volume24h:      data["usd_24h_vol"],
		PriceChange24h: data["usd_24h_change"],
	}, nil
}

// FetchTokenInfo fetches descriptive metadata for a token id. Non-success
// responses mean the token is unknown here, reported as absent.
func (p *CoinGecko) FetchTokenInfo(ctx context.Context, token string) (*domain.TokenInfo, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-token-info")
	defer span.End()

	reqURL := fmt.Sprintf("%s/coins/%s", p.baseURL, url.PathEscape(strings.ToLower(token)))

	body, err := p.doRequest(ctx, reqURL)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch token info: %w", err)
	}

	var raw struct {
		Name        string `json:"name"`
		Symbol      string `json:"symbol"`
		Description struct {
			En string `json:"en"`
		} `json:"description"`
		Links struct {
			Homepage []string `json:"homepage"`
		} `json:"links"`
		Categories    []string `json:"categories"`
		MarketCapRank int      `json:"market_cap_rank"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse token info: %w", err)
	}

	info := &domain.TokenInfo{
		Name:          raw.Name,
		Symbol:        raw.Symbol,
		Description:   raw.Description.En,
		Categories:    raw.Categories,
		MarketCapRank: raw.MarketCapRank,
	}
	for _, h := range raw.Links.Homepage {
		if h != "" {
			info.Homepage = h
			break
		}
	}
	return info, nil
}

func (p *CoinGecko) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Provider: p.Name(), StatusCode: resp.StatusCode, Body: string(body)}
	}

	return io.ReadAll(resp.Body)
}
