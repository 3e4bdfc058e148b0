package forecast

import (
	"context"
	"math"

	"stock-predictor/internal/features"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/trace"
	"stock-predictor/internal/types"
)

// ShortTerm predicts next-day open/high/low/close with one freshly fitted
// regression forest per target field. No model state survives a call.
type ShortTerm struct {
	engine *features.Engine
	params ForestParams
	// WithAccuracy enables the backward one-step MAPE diagnostic.
	WithAccuracy bool
}

func NewShortTerm(engine *features.Engine, params ForestParams) *ShortTerm {
	return &ShortTerm{engine: engine, params: params}
}

var shortTermTargets = []types.TargetField{
	types.TargetClose, types.TargetLow, types.TargetHigh, types.TargetOpen,
}

// Predict runs the indicator engine, trains on every row but the last and
// predicts the last row per target field. Returns ErrInsufficientData when
// warm-up removal leaves fewer than two usable rows.
func (st *ShortTerm) Predict(ctx context.Context, series types.PriceSeries) (*types.ShortTermForecast, error) {
	ctx, span := trace.StartSpan(ctx, "short-term-predict")
	defer span.End()

	if len(series) < 2 {
		return nil, ErrInsufficientData
	}

	m := st.engine.Build(series)
	if len(m.Rows) < 2 {
		logger.Debug(ctx, "Feature matrix too short after warm-up removal", "rows", len(m.Rows))
		return nil, ErrInsufficientData
	}

	trainX := m.Rows[:len(m.Rows)-1]
	lastRow := m.Rows[len(m.Rows)-1]

	out := &types.ShortTermForecast{}
	if st.WithAccuracy {
		out.Accuracy = make(map[string]float64, len(shortTermTargets))
	}

	for _, field := range shortTermTargets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		y := m.Targets(field)
		forest, err := FitForest(trainX, y[:len(y)-1], st.params)
		if err != nil {
			return nil, err
		}
		pred := forest.Predict(lastRow)
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return nil, ErrModelFit
		}
		switch field {
		case types.TargetClose:
			out.Close = pred
		case types.TargetLow:
			out.Low = pred
		case types.TargetHigh:
			out.High = pred
		case types.TargetOpen:
			out.Open = pred
		}
		if st.WithAccuracy && len(m.Rows) >= 3 {
			prevRow := m.Rows[len(m.Rows)-2]
			actual := y[len(y)-2]
			out.Accuracy[string(field)] = accuracyPct(actual, forest.Predict(prevRow))
		}
	}

	lastClose := m.Bars[len(m.Bars)-1].Close
	if lastClose != 0 {
		out.PctChangeLow = (out.Low - lastClose) / lastClose * 100
		out.PctChangeHigh = (out.High - lastClose) / lastClose * 100
	}
	return out, nil
}

// accuracyPct is 100 minus the mean absolute percentage error of a single
// backward prediction.
func accuracyPct(actual, predicted float64) float64 {
	if actual == 0 {
		return 0
	}
	return 100 - math.Abs((actual-predicted)/actual)*100
}
