package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tokenlens/internal/cache"
	"tokenlens/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// MarketSource is one upstream data provider in the fallback chain.
type MarketSource interface {
	Name() string
	FetchMarketData(ctx context.Context, token string) (*domain.MarketData, error)
	FetchTokenInfo(ctx context.Context, token string) (*domain.TokenInfo, error)
}

// Config tunes the aggregation engine. Zero values fall back to defaults.
type Config struct {
	// CacheTTL bounds how long a cached analysis is served before a
	// fresh fetch. Default 5 minutes.
	CacheTTL time.Duration
	// Timeframes is the closed set of accepted analysis windows.
	Timeframes []string
	// TokenInfoFallback controls what a transport error on the first
	// info source does: fall through to the next source (true, the
	// default wiring) or end the lookup with no info (false).
	TokenInfoFallback bool
}

// AnalysisService orchestrates market data fetching across an ordered
// fallback chain of sources and serves cached analyses.
type AnalysisService struct {
	tracer       trace.Tracer
	sources      []MarketSource
	cache        cache.Store
	ttl          time.Duration
	timeframes   []string
	infoFallback bool
	now          func() time.Time
}

func NewAnalysisService(tracer trace.Tracer, sources []MarketSource, store cache.Store, cfg Config) *AnalysisService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if len(cfg.Timeframes) == 0 {
		cfg.Timeframes = domain.SupportedTimeframes
	}
	if store == nil {
		store = cache.NewMemory()
	}
	return &AnalysisService{
		tracer:       tracer,
		sources:      sources,
		cache:        store,
		ttl:          cfg.CacheTTL,
		timeframes:   cfg.Timeframes,
		infoFallback: cfg.TokenInfoFallback,
		now:          time.Now,
	}
}

// AnalyzeToken returns a market analysis for one token, served from cache
// when a fresh entry exists. On a miss, market data and token info are
// fetched concurrently; only a market data failure across every source
// fails the analysis.
func (s *AnalysisService) AnalyzeToken(ctx context.Context, token, timeframe string) (*domain.Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze-token")
	defer span.End()
	span.SetAttributes(
		attribute.String("token", token),
		attribute.String("timeframe", timeframe),
	)

	if !s.supported(timeframe) {
		return nil, &domain.InvalidTimeframeError{Timeframe: timeframe, Supported: s.timeframes}
	}

	token = strings.ToLower(strings.TrimSpace(token))
	key := cache.Key(token, timeframe)

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("cache read error for %s: %v", key, err)
	}
	if cached != nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	analysis, err := s.fetchAnalysis(ctx, token, timeframe)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.cache.Set(ctx, key, analysis, s.ttl); err != nil {
		log.Printf("cache write error for %s: %v", key, err)
	}
	return analysis, nil
}

// CompareTokens analyzes every token concurrently and reshapes the results
// into a cross-token metrics table. All-or-nothing: one failed analysis
// fails the whole comparison.
func (s *AnalysisService) CompareTokens(ctx context.Context, tokens []string, timeframe string) (*domain.Comparison, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.compare-tokens")
	defer span.End()
	span.SetAttributes(
		attribute.Int("token_count", len(tokens)),
		attribute.String("timeframe", timeframe),
	)

	if !s.supported(timeframe) {
		return nil, &domain.InvalidTimeframeError{Timeframe: timeframe, Supported: s.timeframes}
	}

	analyses := make([]*domain.Analysis, len(tokens))
	g, gctx := errgroup.WithContext(ctx)
	for i, token := range tokens {
		g.Go(func() error {
			a, err := s.AnalyzeToken(gctx, token, timeframe)
			if err != nil {
				return err
			}
			analyses[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	comparison := &domain.Comparison{
		Timestamp: s.now().UTC(),
		Timeframe: timeframe,
		Tokens:    make(map[string]domain.Metrics, len(analyses)),
	}
	for _, a := range analyses {
		comparison.Tokens[a.Token] = a.Metrics
	}
	return comparison, nil
}

// ClearCache discards every cached analysis.
func (s *AnalysisService) ClearCache(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "analysis-service.clear-cache")
	defer span.End()

	return s.cache.Clear(ctx)
}

// RefreshToken re-fetches an analysis and overwrites the cached entry
// even when a fresh one exists. Used by the watchlist job to keep hot
// tokens warm.
func (s *AnalysisService) RefreshToken(ctx context.Context, token, timeframe string) error {
	ctx, span := s.tracer.Start(ctx, "analysis-service.refresh-token")
	defer span.End()
	span.SetAttributes(attribute.String("token", token))

	if !s.supported(timeframe) {
		return &domain.InvalidTimeframeError{Timeframe: timeframe, Supported: s.timeframes}
	}

	token = strings.ToLower(strings.TrimSpace(token))
	analysis, err := s.fetchAnalysis(ctx, token, timeframe)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, cache.Key(token, timeframe), analysis, s.ttl)
}

func (s *AnalysisService) fetchAnalysis(ctx context.Context, token, timeframe string) (*domain.Analysis, error) {
	var md *domain.MarketData
	var info *domain.TokenInfo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.fetchMarketData(gctx, token)
		if err != nil {
			return err
		}
		md = m
		return nil
	})
	g.Go(func() error {
		info = s.fetchTokenInfo(gctx, token)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Analysis{
		Token:      token,
		Timestamp:  s.now().UTC(),
		Timeframe:  timeframe,
		MarketData: *md,
		TokenInfo:  info,
		Metrics:    domain.ProjectMetrics(*md),
	}, nil
}

// fetchMarketData walks the source chain in priority order. A source that
// errors or comes back empty is logged and skipped; exhausting the chain
// fails the whole fetch.
func (s *AnalysisService) fetchMarketData(ctx context.Context, token string) (*domain.MarketData, error) {
	var errs []error
	for _, src := range s.sources {
		md, err := src.FetchMarketData(ctx, token)
		if err != nil {
			log.Printf("%s market data fetch failed for %s: %v", src.Name(), token, err)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		if md == nil {
			log.Printf("%s returned no market data for %s", src.Name(), token)
			errs = append(errs, fmt.Errorf("%s: no market data", src.Name()))
			continue
		}
		return md, nil
	}
	return nil, &domain.DataUnavailableError{Token: token, Errs: errs}
}

// fetchTokenInfo is best-effort: failures and absences fall through to the
// next source, and exhausting the chain yields an analysis without token
// info. With TokenInfoFallback disabled, a transport error on a source
// ends the lookup instead of trying the next one.
func (s *AnalysisService) fetchTokenInfo(ctx context.Context, token string) *domain.TokenInfo {
	for _, src := range s.sources {
		info, err := src.FetchTokenInfo(ctx, token)
		if err != nil {
			log.Printf("%s token info fetch failed for %s: %v", src.Name(), token, err)
			if !s.infoFallback {
				return nil
			}
			continue
		}
		if info != nil {
			return info
		}
	}
	return nil
}

func (s *AnalysisService) supported(timeframe string) bool {
	for _, tf := range s.timeframes {
		if tf == timeframe {
			return true
		}
	}
	return false
}
