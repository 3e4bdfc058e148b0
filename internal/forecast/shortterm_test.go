package forecast

import (
	"context"
	"math"
	"testing"
	"time"

	"stock-predictor/internal/features"
	"stock-predictor/internal/types"
)

func shortTermSeries(n int) types.PriceSeries {
	s := make(types.PriceSeries, 0, n)
	day := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		base := 500 + 20*math.Sin(float64(i)/5) + float64(i)/2
		s = append(s, types.Bar{
			Date:  day.AddDate(0, 0, i),
			Open:  base - 1,
			High:  base + 3,
			Low:   base - 3,
			Close: base,
			Vol:   2000 + 100*float64(i%5),
		})
	}
	return s
}

func testShortTerm() *ShortTerm {
	engine := features.NewEngine(features.DefaultParams())
	p := DefaultForestParams()
	p.Trees = 10 // keep the test fast; determinism is seed-driven either way
	return NewShortTerm(engine, p)
}

func TestShortTermDeterministic(t *testing.T) {
	st := testShortTerm()
	series := shortTermSeries(130)

	a, err := st.Predict(context.Background(), series)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := st.Predict(context.Background(), series)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a.Close != b.Close || a.Low != b.Low || a.High != b.High || a.Open != b.Open {
		t.Errorf("Repeated invocations diverged: %+v vs %+v", a, b)
	}
}

func TestShortTermPlausibleRange(t *testing.T) {
	st := testShortTerm()
	series := shortTermSeries(130)

	fc, err := st.Predict(context.Background(), series)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	lastClose := series[len(series)-1].Close
	for name, v := range map[string]float64{
		"close": fc.Close, "low": fc.Low, "high": fc.High, "open": fc.Open,
	} {
		if v <= 0 || math.Abs(v-lastClose)/lastClose > 0.5 {
			t.Errorf("Predicted %s %f implausible vs last close %f", name, v, lastClose)
		}
	}
}

func TestShortTermInsufficientSeries(t *testing.T) {
	st := testShortTerm()

	if _, err := st.Predict(context.Background(), shortTermSeries(1)); err != ErrInsufficientData {
		t.Errorf("Expected ErrInsufficientData for 1 bar, got %v", err)
	}
	// Long enough to have bars but too short for the longest lookback.
	if _, err := st.Predict(context.Background(), shortTermSeries(80)); err != ErrInsufficientData {
		t.Errorf("Expected ErrInsufficientData for warm-up-only series, got %v", err)
	}
}

func TestShortTermAccuracyDiagnostic(t *testing.T) {
	st := testShortTerm()
	st.WithAccuracy = true

	fc, err := st.Predict(context.Background(), shortTermSeries(130))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fc.Accuracy) != 4 {
		t.Fatalf("Expected 4 accuracy entries, got %d", len(fc.Accuracy))
	}
	for field, acc := range fc.Accuracy {
		if acc > 100 {
			t.Errorf("Accuracy for %s above 100: %f", field, acc)
		}
	}
}

func TestShortTermCancellation(t *testing.T) {
	st := testShortTerm()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := st.Predict(ctx, shortTermSeries(130)); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
