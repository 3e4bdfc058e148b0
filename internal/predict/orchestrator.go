package predict

import (
	"context"
	"errors"
	"time"

	"stock-predictor/internal/forecast"
	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// ErrInvalidHorizon signals a horizon selector outside
// {short_term, long_term}.
var ErrInvalidHorizon = errors.New("invalid horizon")

// Orchestrator drives one prediction request: fetch history, validate its
// length, route to the matching predictor and fold failures into a
// structured Forecast. Fit failures never propagate as faults.
type Orchestrator struct {
	history    interfaces.HistoryProvider
	short      *forecast.ShortTerm
	long       *forecast.LongTerm
	fitTimeout time.Duration
	// longTermPeriod is the history window refetched for the long-term
	// path, nominally five years of daily closes.
	longTermPeriod string
}

func New(history interfaces.HistoryProvider, short *forecast.ShortTerm, long *forecast.LongTerm, fitTimeout time.Duration) *Orchestrator {
	if fitTimeout <= 0 {
		fitTimeout = 2 * time.Minute
	}
	return &Orchestrator{
		history:        history,
		short:          short,
		long:           long,
		fitTimeout:     fitTimeout,
		longTermPeriod: "5y",
	}
}

// SetLongTermPeriod overrides the history window used by the long-term path.
func (o *Orchestrator) SetLongTermPeriod(period string) {
	if period != "" {
		o.longTermPeriod = period
	}
}

// Predict runs the request state machine for one symbol and horizon.
func (o *Orchestrator) Predict(ctx context.Context, symbol string, horizon types.Horizon) types.Forecast {
	ctx, span := trace.StartSpan(ctx, "predict")
	defer span.End()

	out := types.Forecast{Symbol: symbol, Horizon: horizon}

	series, err := o.history.HistoryPeriod(ctx, symbol, "max")
	if err != nil {
		logger.ErrorWithErr(ctx, "History fetch failed", err, "symbol", symbol)
		out.Status = types.StatusInsufficient
		out.Detail = err.Error()
		return out
	}
	if len(series) < 2 {
		out.Status = types.StatusInsufficient
		return out
	}

	switch horizon {
	case types.HorizonShortTerm:
		return o.shortTerm(ctx, symbol, series, out)
	case types.HorizonLongTerm:
		return o.longTerm(ctx, symbol, out)
	default:
		out.Status = types.StatusInvalidTerm
		out.Detail = ErrInvalidHorizon.Error()
		return out
	}
}

func (o *Orchestrator) shortTerm(ctx context.Context, symbol string, series types.PriceSeries, out types.Forecast) types.Forecast {
	fitCtx, cancel := context.WithTimeout(ctx, o.fitTimeout)
	defer cancel()

	st, err := o.short.Predict(fitCtx, series)
	if err != nil {
		return failed(ctx, symbol, out, err)
	}
	out.Status = types.StatusOK
	out.ShortTerm = st
	return out
}

func (o *Orchestrator) longTerm(ctx context.Context, symbol string, out types.Forecast) types.Forecast {
	series, err := o.history.HistoryPeriod(ctx, symbol, o.longTermPeriod)
	if err != nil {
		logger.ErrorWithErr(ctx, "History fetch failed", err, "symbol", symbol)
		out.Status = types.StatusInsufficient
		out.Detail = err.Error()
		return out
	}

	fitCtx, cancel := context.WithTimeout(ctx, o.fitTimeout)
	defer cancel()

	lt, err := o.long.Predict(fitCtx, series)
	if err != nil {
		return failed(ctx, symbol, out, err)
	}
	out.Status = types.StatusOK
	out.LongTerm = lt
	return out
}

func failed(ctx context.Context, symbol string, out types.Forecast, err error) types.Forecast {
	switch {
	case errors.Is(err, forecast.ErrInsufficientData):
		out.Status = types.StatusInsufficient
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		out.Status = types.StatusFitFailed
		out.Detail = "model fit timed out"
	default:
		out.Status = types.StatusFitFailed
		out.Detail = err.Error()
	}
	logger.Warn(ctx, "Prediction did not complete",
		"symbol", symbol, "status", string(out.Status), "error", err)
	return out
}
