package forecast

import (
	"context"
	"math"

	"stock-predictor/internal/logger"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// LongTerm produces a 30-trading-day-ahead price forecast from ~5 years of
// daily closes: first differences stationarize the series, the AR model
// forecasts future differences and the cumulative sum rebuilds a price path.
type LongTerm struct {
	params ARParams
}

func NewLongTerm(params ARParams) *LongTerm {
	return &LongTerm{params: params}
}

// MinBars is the shortest close series the predictor accepts.
func (lt *LongTerm) MinBars() int {
	return lt.params.MinObservations() + 1
}

// Predict returns the final point of the reconstructed price path.
func (lt *LongTerm) Predict(ctx context.Context, series types.PriceSeries) (*types.LongTermForecast, error) {
	_, span := trace.StartSpan(ctx, "long-term-predict")
	defer span.End()

	closes := series.Closes()
	if len(closes) < lt.MinBars() {
		return nil, ErrInsufficientData
	}

	diffs := difference(closes)
	forecastDiffs, err := ForecastDiffs(diffs, lt.params)
	if err != nil {
		return nil, err
	}

	price := closes[len(closes)-1]
	for _, d := range forecastDiffs {
		price += d
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrModelFit
	}

	logger.Debug(ctx, "Long-term forecast reconstructed",
		"last_close", closes[len(closes)-1], "steps", lt.params.Steps, "price", price)
	return &types.LongTermForecast{Price: price}, nil
}
