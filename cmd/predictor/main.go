package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"stock-predictor/internal/logger"
	"stock-predictor/internal/screen"
	"stock-predictor/internal/store"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	symbol := flag.String("symbol", "", "predict a single symbol and exit")
	term := flag.String("term", string(types.HorizonShortTerm), "horizon: short_term or long_term")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() { _ = trace.Shutdown(context.Background()) }()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	history := buildHistoryProvider(cfg)
	orch := buildOrchestrator(cfg, history)

	// One-shot mode: predict a single symbol and print the result.
	if *symbol != "" {
		fc := orch.Predict(ctx, *symbol, types.Horizon(*term))
		logger.Forecast(ctx, fc.Symbol, string(fc.Horizon), string(fc.Status))
		b, _ := json.Marshal(fc)
		fmt.Println(string(b))
		return
	}

	quotes := buildQuoteProvider(cfg, history)
	svc, cache, err := buildScreenService(cfg, orch, quotes)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build screening service", err)
		os.Exit(1)
	}

	// Scheduled news refresh keeps the cache warm between screening runs.
	c := cron.New()
	if cfg.News.RefreshCron != "" {
		_, err := c.AddFunc(cfg.News.RefreshCron, func() {
			if err := cache.Refresh(ctx); err != nil {
				logger.Warn(ctx, "Scheduled news refresh failed", "error", err)
			}
		})
		if err != nil {
			logger.ErrorWithErr(ctx, "Invalid news refresh schedule", err,
				"cron", cfg.News.RefreshCron)
			os.Exit(1)
		}
		c.Start()
		defer c.Stop()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	interval := time.Duration(cfg.Screen.IntervalMinutes) * time.Minute
	tick := time.NewTicker(interval)
	defer tick.Stop()

	logger.Info(ctx, "Predictor started",
		"data_source", cfg.DataSource, "news_source", cfg.News.Source,
		"screen_interval", interval.String())

	runCycle(ctx, svc)
	for {
		select {
		case <-tick.C:
			runCycle(ctx, svc)
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			return
		case <-ctx.Done():
			return
		}
	}
}

func runCycle(ctx context.Context, svc *screen.Service) {
	results, err := svc.Run(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Screening cycle failed", err)
		return
	}
	for _, r := range results {
		logger.Candidate(ctx, r.Symbol, r.Details.Reason, r.Details.URL)
		b, _ := json.Marshal(r)
		fmt.Println(string(b))
	}
}
