package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokenlens/internal/advisor"
	"tokenlens/internal/bot"
	"tokenlens/internal/cache"
	"tokenlens/internal/config"
	"tokenlens/internal/db"
	"tokenlens/internal/handler"
	"tokenlens/internal/job"
	"tokenlens/internal/provider"
	"tokenlens/internal/repository"
	"tokenlens/internal/service"
	"tokenlens/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "tokenlens/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initTracerFunc   = tracing.InitTracer
	connectRedisFunc = func(ctx context.Context, addr string) (cache.Store, error) {
		return cache.ConnectRedis(ctx, addr)
	}
	newSourcesFunc = func(cfg *config.Config, tracer trace.Tracer) []service.MarketSource {
		return []service.MarketSource{
			provider.NewCoinGecko(cfg.CoinGeckoBaseURL, cfg.CoinGeckoAPIKey, tracer),
			provider.NewCookieFun(cfg.CookieFunBaseURL, cfg.CookieFunAPIKey, cfg.Chains, tracer),
		}
	}
	newAnalysisServiceFunc = service.NewAnalysisService
	newConversationRepo    = repository.NewConversationRepository
	startRefresherFunc     = func(w *job.WatchlistRefresher, ctx context.Context) { go w.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Tokenlens API
// @version         1.0
// @description     Crypto market analysis over multiple data sources with caching.

// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name X-API-Key

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	initPostgresFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Pick the cache backend
	var store cache.Store
	if cfg.RedisURL != "" {
		store, err = connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
	} else {
		store = cache.NewMemory()
	}

	// Create sources and the analysis service
	sources := newSourcesFunc(cfg, tracer)
	analysisService := newAnalysisServiceFunc(tracer, sources, store, service.Config{
		CacheTTL:          time.Duration(cfg.CacheTTLSecs) * time.Second,
		Timeframes:        cfg.Timeframes,
		TokenInfoFallback: cfg.TokenInfoFallback,
	})

	// Conversation history and migrations (needs Postgres)
	var convStore advisor.ConversationStore
	if db.Pool != nil {
		convRepo := newConversationRepo(db.Pool, tracer)
		if err := convRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		convStore = convRepo
	}

	// Advisor (needs a Groq API key)
	var advisorService *advisor.AdvisorService
	if cfg.GroqAPIKey != "" {
		llm := advisor.NewOpenAIClient(cfg.GroqAPIKey, cfg.GroqBaseURL)
		advisorService = advisor.NewAdvisorService(tracer, llm, analysisService, convStore, advisor.Config{
			Model:         cfg.GroqModel,
			MaxHistory:    cfg.AdvisorMaxHistory,
			Timeframe:     cfg.DefaultTimeframe,
			ContextTokens: cfg.Watchlist,
		})
	}

	// Keep watchlist tokens warm (background goroutine, stopped by ctx cancel)
	if len(cfg.Watchlist) > 0 {
		refresher := job.NewWatchlistRefresher(tracer, analysisService, cfg.Watchlist, cfg.DefaultTimeframe, cfg.WatchlistPollSecs)
		startRefresherFunc(refresher, ctx)
	}

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(analysisService, advisorService, cfg.DefaultTimeframe)

	// Create handlers and routes
	h := newHandlerFunc(tracer, analysisService, cfg.DefaultTimeframe)
	if advisorService != nil {
		h.SetAdvisor(advisorService)
	}

	r := newRouterFunc()
	r.Use(otelgin.Middleware("tokenlens"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
