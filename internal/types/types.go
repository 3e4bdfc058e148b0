package types

import "time"

// Bar is one OHLCV record for a single trading day.
type Bar struct {
	Date                        time.Time
	Open, High, Low, Close, Vol float64
}

// PriceSeries is an ordered-by-date sequence of bars. Constructed fresh per
// request from a history provider and never mutated afterwards.
type PriceSeries []Bar

func (s PriceSeries) Closes() []float64  { return s.field(func(b Bar) float64 { return b.Close }) }
func (s PriceSeries) Opens() []float64   { return s.field(func(b Bar) float64 { return b.Open }) }
func (s PriceSeries) Highs() []float64   { return s.field(func(b Bar) float64 { return b.High }) }
func (s PriceSeries) Lows() []float64    { return s.field(func(b Bar) float64 { return b.Low }) }
func (s PriceSeries) Volumes() []float64 { return s.field(func(b Bar) float64 { return b.Vol }) }

func (s PriceSeries) field(get func(Bar) float64) []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = get(b)
	}
	return out
}

// Sorted reports whether dates are strictly increasing with no duplicates.
func (s PriceSeries) Sorted() bool {
	for i := 1; i < len(s); i++ {
		if !s[i-1].Date.Before(s[i].Date) {
			return false
		}
	}
	return true
}

// TargetField selects which bar field a short-term model predicts.
type TargetField string

const (
	TargetOpen  TargetField = "open"
	TargetHigh  TargetField = "high"
	TargetLow   TargetField = "low"
	TargetClose TargetField = "close"
)

// Value extracts the target field from a bar.
func (f TargetField) Value(b Bar) float64 {
	switch f {
	case TargetOpen:
		return b.Open
	case TargetHigh:
		return b.High
	case TargetLow:
		return b.Low
	default:
		return b.Close
	}
}

// Horizon selects the forecasting mode.
type Horizon string

const (
	HorizonShortTerm Horizon = "short_term"
	HorizonLongTerm  Horizon = "long_term"
)

// ForecastStatus tags the outcome of a prediction request.
type ForecastStatus string

const (
	StatusOK           ForecastStatus = "ok"
	StatusInsufficient ForecastStatus = "insufficient_data"
	StatusInvalidTerm  ForecastStatus = "invalid_term"
	StatusFitFailed    ForecastStatus = "model_fit_failure"
)

// ShortTermForecast is the next-day point forecast per price field.
type ShortTermForecast struct {
	Close float64 `json:"close"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Open  float64 `json:"open"`
	// PctChangeLow/High are relative to the last observed close.
	PctChangeLow  float64 `json:"pct_change_low"`
	PctChangeHigh float64 `json:"pct_change_high"`
	// Accuracy is the backward one-step diagnostic (100 - MAPE%) keyed by
	// target field. Diagnostic output only, not part of the forecast.
	Accuracy map[string]float64 `json:"accuracy,omitempty"`
}

// LongTermForecast is the 30-trading-day-ahead point forecast.
type LongTermForecast struct {
	Price float64 `json:"price"`
}

// Forecast is the tagged result crossing the orchestrator boundary.
// Exactly one of ShortTerm/LongTerm is set when Status == StatusOK.
type Forecast struct {
	Symbol    string             `json:"symbol"`
	Horizon   Horizon            `json:"horizon"`
	Status    ForecastStatus     `json:"status"`
	ShortTerm *ShortTermForecast `json:"short_term,omitempty"`
	LongTerm  *LongTermForecast  `json:"long_term,omitempty"`
	Detail    string             `json:"detail,omitempty"`
}

// NewsArticle is an externally fetched headline. Read-only.
type NewsArticle struct {
	Title string `json:"Title"`
	URL   string `json:"URL"`
}

// BuyCandidate is a ticker flagged by the news screener. The candidate set
// is keyed by symbol; the last matching headline processed wins.
type BuyCandidate struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason_to_buy"`
	URL    string `json:"url"`
}
