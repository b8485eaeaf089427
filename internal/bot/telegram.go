package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"tokenlens/internal/advisor"
	"tokenlens/internal/domain"
	"tokenlens/internal/service"

	tele "gopkg.in/telebot.v3"
)

func StartTelegramBot(analysisService *service.AnalysisService, advisorService *advisor.AdvisorService, defaultTimeframe string) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/analyze", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /analyze solana [timeframe]\nTimeframes: %s", strings.Join(domain.SupportedTimeframes, ", ")))
		}
		timeframe := defaultTimeframe
		if len(args) > 1 {
			timeframe = args[1]
		}
		analysis, err := analysisService.AnalyzeToken(context.Background(), args[0], timeframe)
		if err != nil {
			return c.Send(fmt.Sprintf("Error analyzing %s: %v", args[0], err))
		}
		return c.Send(formatAnalysis(analysis))
	})

	b.Handle("/compare", func(c tele.Context) error {
		args := c.Args()
		if len(args) < 2 {
			return c.Send("Usage: /compare solana ethereum [more tokens...]")
		}
		comparison, err := analysisService.CompareTokens(context.Background(), args, defaultTimeframe)
		if err != nil {
			return c.Send(fmt.Sprintf("Error comparing tokens: %v", err))
		}
		return c.Send(formatComparison(comparison))
	})

	b.Handle("/ask", func(c tele.Context) error {
		if advisorService == nil {
			return c.Send("The advisor is not configured.")
		}
		question := strings.TrimSpace(strings.TrimPrefix(c.Text(), "/ask"))
		if question == "" {
			return c.Send("Usage: /ask how is sol doing today?")
		}
		reply, err := advisorService.Ask(context.Background(), c.Chat().ID, question)
		if err != nil {
			return c.Send(fmt.Sprintf("Advisor error: %v", err))
		}
		return c.Send(reply)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatAnalysis(a *domain.Analysis) string {
	var sb strings.Builder
	name := a.Token
	if a.TokenInfo != nil && a.TokenInfo.Name != "" {
		name = fmt.Sprintf("%s (%s)", a.TokenInfo.Name, strings.ToUpper(a.TokenInfo.Symbol))
	}
	sb.WriteString(fmt.Sprintf("%s [%s]\n", name, a.Timeframe))
	sb.WriteString(fmt.Sprintf("Price: $%.4f\n", a.MarketData.Price))
	sb.WriteString(fmt.Sprintf("24h Change: %+.2f%%\n", a.MarketData.PriceChange24h))
	sb.WriteString(fmt.Sprintf("24h Volume: $%.0f\n", a.MarketData.Volume24h))
	sb.WriteString(fmt.Sprintf("Market Cap: $%.0f", a.MarketData.MarketCap))
	if a.MarketData.Liquidity > 0 {
		sb.WriteString(fmt.Sprintf("\nLiquidity: $%.0f", a.MarketData.Liquidity))
	}
	if a.MarketData.Holders > 0 {
		sb.WriteString(fmt.Sprintf("\nHolders: %d", a.MarketData.Holders))
	}
	return sb.String()
}

func formatComparison(cmp *domain.Comparison) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Comparison [%s]\n", cmp.Timeframe))
	for token, m := range cmp.Tokens {
		sb.WriteString(fmt.Sprintf("\n%s\n  Price: $%.4f\n  24h Change: %+.2f%%\n  Market Cap: $%.0f", token, m.Price, m.PriceChange24h, m.MarketCap))
	}
	return sb.String()
}
