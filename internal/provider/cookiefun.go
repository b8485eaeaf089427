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

const cookieFunDefaultBaseURL = "https://api.cookie.fun"

// CookieFun fetches market data and token metadata from the Cookie.fun API.
// It is the secondary source in the fallback chain and the only one that
// reports liquidity and holder counts.
type CookieFun struct {
	client  *http.Client
	baseURL string
	apiKey  string
	chains  []string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCookieFun creates the adapter. chains scopes token lookups to the
// given networks; empty means the API default.
func NewCookieFun(baseURL, apiKey string, chains []string, tracer trace.Tracer) *CookieFun {
	if baseURL == "" {
		baseURL = cookieFunDefaultBaseURL
	}
	return &CookieFun{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		chains:  chains,
		tracer:  tracer,
		limiter: NewRateLimiter(30, 2*time.Second),
	}
}

func (p *CookieFun) Name() string { return "cookiefun" }

func (p *CookieFun) FetchMarketData(ctx context.Context, token string) (*domain.MarketData, error) {
	_, span := p.tracer.Start(ctx, "cookiefun.fetch-market-data")
	defer span.End()

	reqURL := fmt.Sprintf("%s/v1/tokens/%s/market%s", p.baseURL, url.PathEscape(strings.ToLower(token)), p.chainQuery())

	body, err := p.doRequest(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch market data: %w", err)
	}

	var raw struct {
		Price          float64 `json:"price"`
		MarketCap      float64 `json:"marketCap"`
		Volume24h      float64 `json:"volume24h"`
		PriceChange24h float64 `json:"priceChange24h"`
		Liquidity      float64 `json:"liquidity"`
		Holders        int64   `json:"holders"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse market data: %w", err)
	}

	return &domain.MarketData{
		Price:          raw.Price,
		MarketCap:      raw.MarketCap,
		Volume24h:      raw.Volume24h,
		PriceChange24h: raw.PriceChange24h,
		Liquidity:      raw.Liquidity,
		Holders:        raw.Holders,
	}, nil
}

func (p *CookieFun) FetchTokenInfo(ctx context.Context, token string) (*domain.TokenInfo, error) {
	_, span := p.tracer.Start(ctx, "cookiefun.fetch-token-info")
	defer span.End()

	reqURL := fmt.Sprintf("%s/v1/tokens/%s/info%s", p.baseURL, url.PathEscape(strings.ToLower(token)), p.chainQuery())

	body, err := p.doRequest(ctx, reqURL)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch token info: %w", err)
	}

	var raw struct {
		Name            string            `json:"name"`
		Symbol          string            `json:"symbol"`
		Chain           string            `json:"chain"`
		ContractAddress string            `json:"contractAddress"`
		TotalSupply     float64           `json:"totalSupply"`
		Decimals        int               `json:"decimals"`
		Website         string            `json:"website"`
		Social          map[string]string `json:"social"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse token info: %w", err)
	}

	return &domain.TokenInfo{
		Name:            raw.Name,
		Symbol:          raw.Symbol,
		Chain:           raw.Chain,
		ContractAddress: raw.ContractAddress,
		TotalSupply:     raw.TotalSupply,
		Decimals:        raw.Decimals,
		Homepage:        raw.Website,
		Social:          raw.Social,
	}, nil
}

func (p *CookieFun) chainQuery() string {
	if len(p.chains) == 0 {
		return ""
	}
	return "?chains=" + url.QueryEscape(strings.Join(p.chains, ","))
}

func (p *CookieFun) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

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
