package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock-predictor/internal/features"
	"stock-predictor/internal/forecast"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/marketdata"
	"stock-predictor/internal/news"
	"stock-predictor/internal/predict"
	"stock-predictor/internal/screen"
	"stock-predictor/internal/store"
	"stock-predictor/internal/symbols"
	"stock-predictor/internal/trace"

	"golang.org/x/time/rate"
)

// initializeSystem loads environment variables and initializes the logger
// and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// buildHistoryProvider selects the price-history source from config.
func buildHistoryProvider(cfg *store.Config) interfaces.HistoryProvider {
	if cfg.DataSource == "STATIC" {
		return marketdata.NewStaticProvider()
	}
	return marketdata.NewYahooProvider(cfg.SymbolSuffix, cfg.ProxyURL, 30*time.Second)
}

// buildQuoteProvider prefers Kite Connect when credentials are present and
// falls back to the history provider's most recent daily bar.
func buildQuoteProvider(cfg *store.Config, history interfaces.HistoryProvider) interfaces.QuoteProvider {
	apiKey := os.Getenv("KITE_API_KEY")
	accessToken := os.Getenv("KITE_ACCESS_TOKEN")
	if apiKey != "" && accessToken != "" {
		return marketdata.NewKiteQuotes(apiKey, accessToken, cfg.Exchange)
	}
	return marketdata.NewHistoryQuotes(history)
}

// buildNewsSource selects the headline source from config.
func buildNewsSource(cfg *store.Config) interfaces.NewsProvider {
	if cfg.News.Source == "API" {
		clientCfg := news.DefaultClientConfig()
		clientCfg.URL = cfg.News.URL
		clientCfg.Host = cfg.News.Host
		if cfg.News.APIKeyEnv != "" {
			clientCfg.APIKey = os.Getenv(cfg.News.APIKeyEnv)
		}
		clientCfg.MaxAttempts = cfg.News.MaxAttempts
		clientCfg.Backoff = time.Duration(cfg.News.BackoffSecs) * time.Second
		clientCfg.RateLimit = rate.Every(5 * time.Second)
		return news.NewClient(clientCfg)
	}
	return news.NewScraper(cfg.News.MaxArticles, 30*time.Second)
}

// buildOrchestrator wires the indicator engine and both predictors.
func buildOrchestrator(cfg *store.Config, history interfaces.HistoryProvider) *predict.Orchestrator {
	engine := features.NewEngine(cfg.Indicators)

	forestParams := forecast.DefaultForestParams()
	forestParams.Trees = cfg.Forest.Trees
	forestParams.Seed = cfg.Forest.Seed
	short := forecast.NewShortTerm(engine, forestParams)
	short.WithAccuracy = cfg.Forest.WithAccuracy

	arParams := forecast.ARParams{
		Lags:  cfg.LongTerm.Lags,
		Diff:  cfg.LongTerm.Diff,
		Steps: cfg.LongTerm.Steps,
	}
	long := forecast.NewLongTerm(arParams)

	fitTimeout := time.Duration(cfg.Screen.FitTimeoutSecs) * time.Second
	orch := predict.New(history, short, long, fitTimeout)
	orch.SetLongTermPeriod(cfg.LongTerm.Period)
	return orch
}

// buildScreenService wires the news cache, screener and batch predictor.
func buildScreenService(cfg *store.Config, orch *predict.Orchestrator, quotes interfaces.QuoteProvider) (*screen.Service, *news.ArticleCache, error) {
	mapping, err := symbols.LoadMapping(cfg.MappingPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load symbol mapping: %w", err)
	}

	source := buildNewsSource(cfg)
	cache := news.NewArticleCache(source, time.Duration(cfg.News.CacheTTLMins)*time.Minute)
	screener := news.NewScreener(mapping)
	svc := screen.NewService(cache, screener, orch, quotes, cfg.Screen.Workers)
	return svc, cache, nil
}
