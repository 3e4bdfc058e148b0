package marketdata

import (
	"context"
	"math/rand"
	"time"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/types"
)

// StaticProvider generates deterministic synthetic daily bars. Used in
// STATIC data-source mode and by tests; the per-symbol seed keeps repeated
// fetches identical.
type StaticProvider struct {
	Base float64
}

var _ interfaces.HistoryProvider = (*StaticProvider)(nil)

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{Base: 1000.0}
}

var staticPeriodDays = map[string]int{
	"1d":  1,
	"1mo": 22,
	"1y":  252,
	"5y":  1260,
	"max": 2520,
}

func (p *StaticProvider) History(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	days := int(end.Sub(start).Hours()/24) * 5 / 7
	if days < 1 {
		days = 1
	}
	return p.generate(symbol, days), nil
}

func (p *StaticProvider) HistoryPeriod(ctx context.Context, symbol, period string) (types.PriceSeries, error) {
	days, ok := staticPeriodDays[period]
	if !ok {
		days = 252
	}
	return p.generate(symbol, days), nil
}

func (p *StaticProvider) generate(symbol string, n int) types.PriceSeries {
	rng := rand.New(rand.NewSource(seedFor(symbol)))
	bars := make(types.PriceSeries, 0, n)
	day := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -n)

	price := p.Base
	for i := 0; i < n; i++ {
		drift := (rng.Float64() - 0.48) * 10
		c := price + drift
		h := c + rng.Float64()*3
		l := c - rng.Float64()*3
		bars = append(bars, types.Bar{
			Date:  day.AddDate(0, 0, i),
			Open:  price,
			High:  h,
			Low:   l,
			Close: c,
			Vol:   1000 + rng.Float64()*10000,
		})
		price = c
	}
	return bars
}

func seedFor(symbol string) int64 {
	var seed int64 = 42
	for _, r := range symbol {
		seed = seed*31 + int64(r)
	}
	return seed
}
