package handler

import (
	"context"

	"tokenlens/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Analyzer is the analysis surface the HTTP layer depends on.
type Analyzer interface {
	AnalyzeToken(ctx context.Context, token, timeframe string) (*domain.Analysis, error)
	CompareTokens(ctx context.Context, tokens []string, timeframe string) (*domain.Comparison, error)
	ClearCache(ctx context.Context) error
}

// AdvisorQuerier answers free-form questions with market context.
type AdvisorQuerier interface {
	Ask(ctx context.Context, chatID int64, message string) (string, error)
}

type Handler struct {
	tracer           trace.Tracer
	analysis         Analyzer
	advisor          AdvisorQuerier
	defaultTimeframe string
}

func New(tracer trace.Tracer, analysis Analyzer, defaultTimeframe string) *Handler {
	if defaultTimeframe == "" {
		defaultTimeframe = domain.Timeframe24H
	}
	return &Handler{
		tracer:           tracer,
		analysis:         analysis,
		defaultTimeframe: defaultTimeframe,
	}
}

// SetAdvisor attaches the advisor endpoint. Without it POST /api/advisor
// answers 503.
func (h *Handler) SetAdvisor(advisor AdvisorQuerier) {
	h.advisor = advisor
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/analysis/:token", h.GetAnalysis)
	api.GET("/compare", h.CompareTokens)
	api.DELETE("/cache", h.ClearCache)
	api.POST("/advisor", h.AskAdvisor)
}
