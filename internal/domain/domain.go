package domain

import "time"

// Timeframes accepted by the analysis API.
const (
	Timeframe1H  = "1h"
	Timeframe24H = "24h"
	Timeframe7D  = "7d"
	Timeframe30D = "30d"
)

// SupportedTimeframes is the closed set of analysis windows. Requests for
// anything else are rejected before any upstream call.
var SupportedTimeframes = []string{Timeframe1H, Timeframe24H, Timeframe7D, Timeframe30D}

// SupportedChains lists the chains token lookups are scoped to.
var SupportedChains = []string{"solana", "base"}

// MarketData is the normalized market snapshot shared by all sources.
// Numeric fields a source does not report stay zero, never null.
// Liquidity and holders are source-dependent extras.
type MarketData struct {
	Price          float64 `json:"price"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
	PriceChange24h float64 `json:"price_change_24h"`
	Liquidity      float64 `json:"liquidity,omitempty"`
	Holders        int64   `json:"holders,omitempty"`
}

// TokenInfo is descriptive token metadata. Which fields are populated
// depends on the source that answered.
type TokenInfo struct {
	Name            string            `json:"name"`
	Symbol          string            `json:"symbol"`
	Description     string            `json:"description,omitempty"`
	Homepage        string            `json:"homepage,omitempty"`
	Chain           string            `json:"chain,omitempty"`
	ContractAddress string            `json:"contract_address,omitempty"`
	TotalSupply     float64           `json:"total_supply,omitempty"`
	Decimals        int               `json:"decimals,omitempty"`
	Categories      []string          `json:"categories,omitempty"`
	MarketCapRank   int               `json:"market_cap_rank,omitempty"`
	Social          map[string]string `json:"social,omitempty"`
}

// Metrics is the numeric projection of MarketData carried by comparisons.
type Metrics struct {
	Price          float64 `json:"price"`
	Volume24h      float64 `json:"volume_24h"`
	MarketCap      float64 `json:"market_cap"`
	PriceChange24h float64 `json:"price_change_24h"`
}

// ProjectMetrics derives the Metrics view of a market snapshot.
func ProjectMetrics(md MarketData) Metrics {
	return Metrics{
		Price:          md.Price,
		Volume24h:      md.Volume24h,
		MarketCap:      md.MarketCap,
		PriceChange24h: md.PriceChange24h,
	}
}

// Analysis is a point-in-time snapshot for a single token. TokenInfo is
// nil when no source could supply metadata.
type Analysis struct {
	Token      string     `json:"token"`
	Timestamp  time.Time  `json:"timestamp"`
	Timeframe  string     `json:"timeframe"`
	MarketData MarketData `json:"market_data"`
	TokenInfo  *TokenInfo `json:"token_info,omitempty"`
	Metrics    Metrics    `json:"metrics"`
}

// Comparison is a cross-token view built from independent analyses.
type Comparison struct {
	Timestamp time.Time          `json:"timestamp"`
	Timeframe string             `json:"timeframe"`
	Tokens    map[string]Metrics `json:"tokens"`
}

// ConversationMessage is one turn of an advisor chat.
type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
