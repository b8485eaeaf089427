package advisor

import (
	"fmt"
	"strings"
	"time"

	"tokenlens/internal/domain"
)

const advisorPhilosophy = `You are a crypto market analysis assistant. Your role is to interpret live market data, NOT to invent numbers.

Rules:
- Always reference the specific data points you were given.
- Never fabricate data. If data is unavailable, say so.
- Express uncertainty when the picture is mixed.
- Keep responses concise and actionable. You are talking via chat.
- Do not provide financial advice disclaimers on every message. The user understands this is informational.
- When asked about a token, summarize: current price, 24h change, volume, and your interpretation.
- If no data exists for a token, say so honestly rather than speculating.`

func BuildSystemPrompt(marketContext string) string {
	var sb strings.Builder
	sb.WriteString(advisorPhilosophy)
	sb.WriteString("\n\n--- LIVE MARKET DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(marketContext)
	return sb.String()
}

func FormatMarketContext(analyses []*domain.Analysis) string {
	var sb strings.Builder

	for _, a := range analyses {
		sb.WriteString(fmt.Sprintf("%s (%s): $%.4f (24h: %+.2f%%, vol: $%.0f, mcap: $%.0f)\n",
			a.Token, a.Timeframe,
			a.MarketData.Price, a.MarketData.PriceChange24h,
			a.MarketData.Volume24h, a.MarketData.MarketCap))
		if a.MarketData.Liquidity > 0 {
			sb.WriteString(fmt.Sprintf("  liquidity: $%.0f\n", a.MarketData.Liquidity))
		}
		if a.MarketData.Holders > 0 {
			sb.WriteString(fmt.Sprintf("  holders: %d\n", a.MarketData.Holders))
		}
		if a.TokenInfo != nil {
			sb.WriteString(fmt.Sprintf("  %s (%s)", a.TokenInfo.Name, strings.ToUpper(a.TokenInfo.Symbol)))
			if len(a.TokenInfo.Categories) > 0 {
				sb.WriteString(" - " + strings.Join(a.TokenInfo.Categories, ", "))
			}
			sb.WriteString("\n")
		}
	}

	if sb.Len() == 0 {
		return "No market data currently available."
	}
	return sb.String()
}
