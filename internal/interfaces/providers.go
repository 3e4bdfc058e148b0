package interfaces

import (
	"context"
	"time"

	"stock-predictor/internal/types"
)

// HistoryProvider supplies already-fetched daily price history. An empty
// series is a valid response meaning "no data".
type HistoryProvider interface {
	History(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error)
	HistoryPeriod(ctx context.Context, symbol, period string) (types.PriceSeries, error)
}

// NewsProvider supplies the latest fetched news headlines.
type NewsProvider interface {
	LatestArticles(ctx context.Context) ([]types.NewsArticle, error)
}

// QuoteProvider supplies the last traded price for a symbol.
type QuoteProvider interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
}
