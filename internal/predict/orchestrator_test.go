package predict

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"stock-predictor/internal/features"
	"stock-predictor/internal/forecast"
	"stock-predictor/internal/types"
)

// fakeHistory serves one canned series per period key.
type fakeHistory struct {
	byPeriod map[string]types.PriceSeries
	err      error
}

func (f *fakeHistory) History(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	return nil, errors.New("not used")
}

func (f *fakeHistory) HistoryPeriod(ctx context.Context, symbol, period string) (types.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPeriod[period], nil
}

func syntheticBars(n int) types.PriceSeries {
	s := make(types.PriceSeries, 0, n)
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		base := 250 + 10*math.Sin(float64(i)/7) + float64(i)/3
		s = append(s, types.Bar{
			Date:  day.AddDate(0, 0, i),
			Open:  base - 0.5,
			High:  base + 2,
			Low:   base - 2,
			Close: base,
			Vol:   1500,
		})
	}
	return s
}

func testOrchestrator(h *fakeHistory) *Orchestrator {
	fp := forecast.DefaultForestParams()
	fp.Trees = 5
	short := forecast.NewShortTerm(features.NewEngine(features.DefaultParams()), fp)
	long := forecast.NewLongTerm(forecast.DefaultARParams())
	return New(h, short, long, time.Minute)
}

func TestPredictShortTermHappyPath(t *testing.T) {
	h := &fakeHistory{byPeriod: map[string]types.PriceSeries{
		"max": syntheticBars(130),
	}}
	o := testOrchestrator(h)

	fc := o.Predict(context.Background(), "RELIANCE", types.HorizonShortTerm)
	if fc.Status != types.StatusOK {
		t.Fatalf("Expected StatusOK, got %s (%s)", fc.Status, fc.Detail)
	}
	if fc.ShortTerm == nil || fc.LongTerm != nil {
		t.Error("Expected only the short-term payload to be set")
	}
	if fc.Symbol != "RELIANCE" || fc.Horizon != types.HorizonShortTerm {
		t.Errorf("Echoed request fields wrong: %+v", fc)
	}
}

func TestPredictLongTermHappyPath(t *testing.T) {
	h := &fakeHistory{byPeriod: map[string]types.PriceSeries{
		"max": syntheticBars(300),
		"5y":  syntheticBars(300),
	}}
	o := testOrchestrator(h)

	fc := o.Predict(context.Background(), "TATAMOTORS", types.HorizonLongTerm)
	if fc.Status != types.StatusOK {
		t.Fatalf("Expected StatusOK, got %s (%s)", fc.Status, fc.Detail)
	}
	if fc.LongTerm == nil || fc.ShortTerm != nil {
		t.Error("Expected only the long-term payload to be set")
	}
	if fc.LongTerm.Price <= 0 {
		t.Errorf("Implausible long-term price %f", fc.LongTerm.Price)
	}
}

func TestPredictTooFewBars(t *testing.T) {
	h := &fakeHistory{byPeriod: map[string]types.PriceSeries{
		"max": syntheticBars(1),
	}}
	o := testOrchestrator(h)

	for _, horizon := range []types.Horizon{types.HorizonShortTerm, types.HorizonLongTerm} {
		fc := o.Predict(context.Background(), "X", horizon)
		if fc.Status != types.StatusInsufficient {
			t.Errorf("Horizon %s: expected insufficient_data, got %s", horizon, fc.Status)
		}
	}
}

func TestPredictShortSeriesAfterWarmup(t *testing.T) {
	// Enough bars to pass the 2-bar gate but not the indicator warm-up.
	h := &fakeHistory{byPeriod: map[string]types.PriceSeries{
		"max": syntheticBars(50),
	}}
	o := testOrchestrator(h)

	fc := o.Predict(context.Background(), "X", types.HorizonShortTerm)
	if fc.Status != types.StatusInsufficient {
		t.Errorf("Expected insufficient_data, got %s", fc.Status)
	}
}

func TestPredictInvalidHorizon(t *testing.T) {
	h := &fakeHistory{byPeriod: map[string]types.PriceSeries{
		"max": syntheticBars(130),
	}}
	o := testOrchestrator(h)

	fc := o.Predict(context.Background(), "X", types.Horizon("weekly"))
	if fc.Status != types.StatusInvalidTerm {
		t.Errorf("Expected invalid_term, got %s", fc.Status)
	}
	if fc.ShortTerm != nil || fc.LongTerm != nil {
		t.Error("Invalid horizon must not carry a payload")
	}
}

func TestPredictHistoryFetchFailure(t *testing.T) {
	h := &fakeHistory{err: errors.New("upstream down")}
	o := testOrchestrator(h)

	fc := o.Predict(context.Background(), "X", types.HorizonShortTerm)
	if fc.Status != types.StatusInsufficient {
		t.Errorf("Expected insufficient_data on fetch failure, got %s", fc.Status)
	}
	if fc.Detail == "" {
		t.Error("Expected the failure detail to be recorded")
	}
}

func TestPredictLongTermRefetchTooShort(t *testing.T) {
	// "max" passes validation but the 5y refetch comes back too short for the
	// AR model.
	h := &fakeHistory{byPeriod: map[string]types.PriceSeries{
		"max": syntheticBars(300),
		"5y":  syntheticBars(5),
	}}
	o := testOrchestrator(h)

	fc := o.Predict(context.Background(), "X", types.HorizonLongTerm)
	if fc.Status != types.StatusInsufficient {
		t.Errorf("Expected insufficient_data, got %s", fc.Status)
	}
}
