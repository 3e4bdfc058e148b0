package screen

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/news"
	"stock-predictor/internal/parallel"
	"stock-predictor/internal/predict"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// Result is one screened symbol with its current price and both forecasts.
type Result struct {
	Symbol       string             `json:"symbol"`
	CurrentPrice float64            `json:"current_price"`
	ShortTerm    types.Forecast     `json:"short_term"`
	LongTerm     types.Forecast     `json:"long_term"`
	Details      types.BuyCandidate `json:"details"`
}

// Service ties the pipeline together: cached headlines are screened into buy
// candidates and each candidate gets a current price plus short- and
// long-term forecasts. Candidates are independent, so prediction fans out
// over a bounded worker pool; models are never shared across symbols.
type Service struct {
	cache    *news.ArticleCache
	screener *news.Screener
	orch     *predict.Orchestrator
	quotes   interfaces.QuoteProvider
	workers  int
}

func NewService(cache *news.ArticleCache, screener *news.Screener, orch *predict.Orchestrator, quotes interfaces.QuoteProvider, workers int) *Service {
	if workers < 1 {
		workers = 4
	}
	return &Service{
		cache:    cache,
		screener: screener,
		orch:     orch,
		quotes:   quotes,
		workers:  workers,
	}
}

// Run executes one screening cycle. A news-provider failure yields an empty
// cycle, not an error: retry policy lives inside the provider.
func (s *Service) Run(ctx context.Context) ([]Result, error) {
	ctx, span := trace.StartSpan(ctx, "screen-cycle")
	defer span.End()

	runID := uuid.NewString()
	timer := logger.StartOperation(ctx, "screen-cycle", "run_id", runID)

	articles, err := s.cache.Articles(ctx)
	if err != nil {
		logger.Warn(ctx, "No articles this cycle", "run_id", runID, "error", err)
		timer.End("results", 0)
		return nil, nil
	}

	candidates := s.screener.Screen(ctx, articles)
	if len(candidates) == 0 {
		timer.End("results", 0)
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results []Result
	)
	pool := parallel.NewWorkerPool(s.workers)
	for _, cand := range candidates {
		cand := cand
		pool.Submit(func() {
			r := s.predictOne(ctx, cand)
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		})
	}
	pool.Close()

	sort.Slice(results, func(i, j int) bool { return results[i].Symbol < results[j].Symbol })
	timer.End("results", len(results))
	return results, nil
}

func (s *Service) predictOne(ctx context.Context, cand types.BuyCandidate) Result {
	r := Result{Symbol: cand.Symbol, Details: cand}

	if s.quotes != nil {
		price, err := s.quotes.LastPrice(ctx, cand.Symbol)
		if err != nil {
			logger.Warn(ctx, "Current price unavailable", "symbol", cand.Symbol, "error", err)
		} else {
			r.CurrentPrice = price
		}
	}

	r.ShortTerm = s.orch.Predict(ctx, cand.Symbol, types.HorizonShortTerm)
	r.LongTerm = s.orch.Predict(ctx, cand.Symbol, types.HorizonLongTerm)
	return r
}
