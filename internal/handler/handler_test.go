package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tokenlens/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type stubAnalyzer struct {
	analysis   *domain.Analysis
	comparison *domain.Comparison
	err        error
	cleared    bool
}

func (s *stubAnalyzer) AnalyzeToken(ctx context.Context, token, timeframe string) (*domain.Analysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

func (s *stubAnalyzer) CompareTokens(ctx context.Context, tokens []string, timeframe string) (*domain.Comparison, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comparison, nil
}

func (s *stubAnalyzer) ClearCache(ctx context.Context) error {
	s.cleared = true
	return s.err
}

type stubAdvisor struct {
	reply string
	err   error
}

func (s *stubAdvisor) Ask(ctx context.Context, chatID int64, message string) (string, error) {
	return s.reply, s.err
}

func newTestRouter(analyzer Analyzer, apiKey string) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), analyzer, "24h")
	h.RegisterRoutes(r, apiKey)
	return r, h
}

func TestGetAnalysis(t *testing.T) {
	analyzer := &stubAnalyzer{
		analysis: &domain.Analysis{
			Token:      "solana",
			Timeframe:  "24h",
			MarketData: domain.MarketData{Price: 150},
		},
	}
	r, _ := newTestRouter(analyzer, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/analysis/solana", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got domain.Analysis
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Token != "solana" || got.MarketData.Price != 150 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestGetAnalysisInvalidTimeframe(t *testing.T) {
	analyzer := &stubAnalyzer{
		err: &domain.InvalidTimeframeError{Timeframe: "2h", Supported: domain.SupportedTimeframes},
	}
	r, _ := newTestRouter(analyzer, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/analysis/solana?timeframe=2h", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "supported_timeframes") {
		t.Fatalf("expected supported timeframes in body, got %s", w.Body.String())
	}
}

func TestGetAnalysisAllSourcesDown(t *testing.T) {
	analyzer := &stubAnalyzer{
		err: &domain.DataUnavailableError{Token: "solana", Errs: []error{errors.New("down")}},
	}
	r, _ := newTestRouter(analyzer, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/analysis/solana", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", w.Code)
	}
}

func TestCompareTokens(t *testing.T) {
	analyzer := &stubAnalyzer{
		comparison: &domain.Comparison{
			Timeframe: "24h",
			Tokens: map[string]domain.Metrics{
				"solana":   {Price: 150},
				"ethereum": {Price: 3000},
			},
		},
	}
	r, _ := newTestRouter(analyzer, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/compare?tokens=solana,ethereum", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var got domain.Comparison
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got.Tokens) != 2 {
		t.Fatalf("expected two tokens, got %+v", got.Tokens)
	}
}

func TestCompareTokensMissingParam(t *testing.T) {
	r, _ := newTestRouter(&stubAnalyzer{}, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/compare", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestClearCache(t *testing.T) {
	analyzer := &stubAnalyzer{}
	r, _ := newTestRouter(analyzer, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/cache", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if !analyzer.cleared {
		t.Fatal("expected the cache to be cleared")
	}
}

func TestAskAdvisor(t *testing.T) {
	r, h := newTestRouter(&stubAnalyzer{}, "")
	h.SetAdvisor(&stubAdvisor{reply: "looks healthy"})

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"chat_id": 7, "message": "how is sol?"}`)
	req, _ := http.NewRequest("POST", "/api/advisor", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "looks healthy") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAskAdvisorNotConfigured(t *testing.T) {
	r, _ := newTestRouter(&stubAnalyzer{}, "")

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"message": "hello"}`)
	req, _ := http.NewRequest("POST", "/api/advisor", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}

func TestAskAdvisorMissingMessage(t *testing.T) {
	r, h := newTestRouter(&stubAnalyzer{}, "")
	h.SetAdvisor(&stubAdvisor{reply: "unused"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/advisor", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
