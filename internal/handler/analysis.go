package handler

import (
	"errors"
	"net/http"
	"strings"

	"tokenlens/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetAnalysis godoc
// @Summary      Analyze a token
// @Description  Returns market data, metadata, and derived metrics for one token
// @Tags         analysis
// @Produce      json
// @Param        token      path   string  true   "Token identifier (e.g., solana, bonk)"
// @Param        timeframe  query  string  false  "Analysis timeframe (1h, 24h, 7d, 30d)"  default(24h)
// @Success      200  {object}  domain.Analysis
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/analysis/{token} [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-analysis")
	defer span.End()

	token := c.Param("token")
	timeframe := c.DefaultQuery("timeframe", h.defaultTimeframe)
	span.SetAttributes(
		attribute.String("token", token),
		attribute.String("timeframe", timeframe),
	)

	analysis, err := h.analysis.AnalyzeToken(ctx, token, timeframe)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// CompareTokens godoc
// @Summary      Compare several tokens
// @Description  Returns a side-by-side metrics table for a comma-separated token list
// @Tags         analysis
// @Produce      json
// @Param        tokens     query  string  true   "Comma-separated token identifiers"
// @Param        timeframe  query  string  false  "Analysis timeframe (1h, 24h, 7d, 30d)"  default(24h)
// @Success      200  {object}  domain.Comparison
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/compare [get]
func (h *Handler) CompareTokens(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.compare-tokens")
	defer span.End()

	raw := c.Query("tokens")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tokens query parameter is required"})
		return
	}

	var tokens []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tokens query parameter is required"})
		return
	}

	timeframe := c.DefaultQuery("timeframe", h.defaultTimeframe)
	span.SetAttributes(
		attribute.Int("token_count", len(tokens)),
		attribute.String("timeframe", timeframe),
	)

	comparison, err := h.analysis.CompareTokens(ctx, tokens, timeframe)
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// ClearCache godoc
// @Summary      Clear the analysis cache
// @Description  Discards every cached analysis so the next request refetches
// @Tags         analysis
// @Success      204
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/cache [delete]
func (h *Handler) ClearCache(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.clear-cache")
	defer span.End()

	if err := h.analysis.ClearCache(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeAnalysisError(c *gin.Context, err error) {
	var tfErr *domain.InvalidTimeframeError
	if errors.As(err, &tfErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":                "unsupported timeframe: " + tfErr.Timeframe,
			"supported_timeframes": tfErr.Supported,
		})
		return
	}

	var dataErr *domain.DataUnavailableError
	if errors.As(err, &dataErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
