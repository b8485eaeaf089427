package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"tokenlens/internal/domain"
)

type Config struct {
	HTTPPort    string
	APIKey      string
	DatabaseURL string
	RedisURL    string

	CoinGeckoAPIKey  string
	CoinGeckoBaseURL string
	CookieFunAPIKey  string
	CookieFunBaseURL string

	CacheTTLSecs      int
	Timeframes        []string
	Chains            []string
	DefaultTimeframe  string
	TokenInfoFallback bool

	GroqAPIKey        string
	GroqBaseURL       string
	GroqModel         string
	AdvisorMaxHistory int

	TelegramBotToken  string
	Watchlist         []string
	WatchlistPollSecs int
}

func Load() *Config {
	cfg := &Config{
		APIKey:           os.Getenv("API_KEY"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		CoinGeckoAPIKey:  os.Getenv("COINGECKO_API_KEY"),
		CoinGeckoBaseURL: strings.TrimSpace(os.Getenv("COINGECKO_BASE_URL")),
		CookieFunAPIKey:  os.Getenv("COOKIE_FUN_API_KEY"),
		CookieFunBaseURL: strings.TrimSpace(os.Getenv("COOKIE_FUN_BASE_URL")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.HTTPPort = strings.TrimSpace(os.Getenv("HTTP_PORT"))
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	if cfg.APIKey == "" {
		log.Println("Warning: API_KEY not set, API authentication disabled")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, conversation history disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, using in-memory cache")
	}
	if cfg.CookieFunAPIKey == "" {
		log.Println("Warning: COOKIE_FUN_API_KEY not set")
	}

	cfg.CacheTTLSecs = 300
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSecs = n
		}
	}

	cfg.Timeframes = domain.SupportedTimeframes
	if v := strings.TrimSpace(os.Getenv("SUPPORTED_TIMEFRAMES")); v != "" {
		cfg.Timeframes = splitCSV(v)
	}

	cfg.Chains = domain.SupportedChains
	if v := strings.TrimSpace(os.Getenv("SUPPORTED_CHAINS")); v != "" {
		cfg.Chains = splitCSV(v)
	}

	cfg.DefaultTimeframe = strings.TrimSpace(os.Getenv("DEFAULT_TIMEFRAME"))
	if cfg.DefaultTimeframe == "" {
		cfg.DefaultTimeframe = domain.Timeframe24H
	}

	cfg.TokenInfoFallback = !strings.EqualFold(strings.TrimSpace(os.Getenv("TOKEN_INFO_FALLBACK")), "false")

	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	if cfg.GroqAPIKey == "" {
		log.Println("Warning: GROQ_API_KEY not set, advisor will be disabled")
	}

	cfg.GroqBaseURL = strings.TrimSpace(os.Getenv("GROQ_BASE_URL"))
	if cfg.GroqBaseURL == "" {
		cfg.GroqBaseURL = "https://api.groq.com/openai/v1"
	}

	cfg.GroqModel = strings.TrimSpace(os.Getenv("GROQ_MODEL"))
	if cfg.GroqModel == "" {
		cfg.GroqModel = "llama-3.3-70b-versatile"
	}

	cfg.AdvisorMaxHistory = 20
	if v := os.Getenv("ADVISOR_MAX_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorMaxHistory = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("WATCHLIST_TOKENS")); v != "" {
		cfg.Watchlist = splitCSV(v)
	}

	cfg.WatchlistPollSecs = 300
	if v := strings.TrimSpace(os.Getenv("WATCHLIST_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WatchlistPollSecs = n
		}
	}

	return cfg
}

func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
