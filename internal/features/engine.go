package features

import (
	"math"

	"stock-predictor/internal/ta"
	"stock-predictor/internal/types"
)

// Names is the fixed column order fed to the regression models.
var Names = []string{
	"SMA_30", "SMA_100", "EMA_20", "EMA_50",
	"RSI", "MACD", "MACD_SIGNAL", "MACD_HIST",
	"BB_HIGH", "BB_LOW", "ATR",
	"STOCH_K", "OBV", "CMF",
	"AROON_UP", "AROON_DOWN",
}

// Params holds the indicator window lengths.
type Params struct {
	SMAShort    int     `yaml:"sma_short"`
	SMALong     int     `yaml:"sma_long"`
	EMAShort    int     `yaml:"ema_short"`
	EMALong     int     `yaml:"ema_long"`
	RSIPeriod   int     `yaml:"rsi_period"`
	MACDFast    int     `yaml:"macd_fast"`
	MACDSlow    int     `yaml:"macd_slow"`
	MACDSignal  int     `yaml:"macd_signal"`
	BBWindow    int     `yaml:"bb_window"`
	BBStdDev    float64 `yaml:"bb_stddev"`
	ATRPeriod   int     `yaml:"atr_period"`
	StochPeriod int     `yaml:"stoch_period"`
	CMFWindow   int     `yaml:"cmf_window"`
	AroonWindow int     `yaml:"aroon_window"`
}

// DefaultParams mirrors the standard window lengths for each indicator.
func DefaultParams() Params {
	return Params{
		SMAShort:    30,
		SMALong:     100,
		EMAShort:    20,
		EMALong:     50,
		RSIPeriod:   14,
		MACDFast:    12,
		MACDSlow:    26,
		MACDSignal:  9,
		BBWindow:    20,
		BBStdDev:    2.0,
		ATRPeriod:   14,
		StochPeriod: 14,
		CMFWindow:   20,
		AroonWindow: 25,
	}
}

// Matrix is the feature matrix with rows aligned 1:1 to the bars that
// survived warm-up removal. Targets for row i come from Bars[i].
type Matrix struct {
	Names []string
	Rows  [][]float64
	Bars  types.PriceSeries
}

// Row returns the named-column view of one row.
func (m *Matrix) Row(i int) map[string]float64 {
	out := make(map[string]float64, len(m.Names))
	for j, name := range m.Names {
		out[name] = m.Rows[i][j]
	}
	return out
}

// Targets extracts the target value for every row.
func (m *Matrix) Targets(field types.TargetField) []float64 {
	out := make([]float64, len(m.Bars))
	for i, b := range m.Bars {
		out[i] = field.Value(b)
	}
	return out
}

// Engine derives the fixed indicator set from a price series.
type Engine struct {
	p Params
}

func NewEngine(p Params) *Engine {
	return &Engine{p: p}
}

// MaxLookback is the longest trailing window any indicator needs. A series
// shorter than this produces an empty matrix.
func (e *Engine) MaxLookback() int {
	max := e.p.SMALong
	for _, n := range []int{
		e.p.SMAShort, e.p.EMALong, e.p.MACDSlow + e.p.MACDSignal,
		e.p.RSIPeriod + 1, e.p.BBWindow, e.p.ATRPeriod + 1,
		e.p.StochPeriod, e.p.CMFWindow, e.p.AroonWindow + 1,
	} {
		if n > max {
			max = n
		}
	}
	return max
}

// Build computes every indicator per bar and drops rows for which any
// indicator lacks full trailing history. Values at bar i depend only on bars
// up to and including i, so appending later bars never changes earlier rows.
func (e *Engine) Build(s types.PriceSeries) *Matrix {
	closes := s.Closes()
	highs := s.Highs()
	lows := s.Lows()
	vols := s.Volumes()

	macd, macdSig, macdHist := ta.MACDSeries(closes, e.p.MACDFast, e.p.MACDSlow, e.p.MACDSignal)
	bbHigh, bbLow := ta.BollingerSeries(closes, e.p.BBWindow, e.p.BBStdDev)
	aroonUp, aroonDown := ta.AroonSeries(highs, lows, e.p.AroonWindow)

	cols := [][]float64{
		ta.SMASeries(closes, e.p.SMAShort),
		ta.SMASeries(closes, e.p.SMALong),
		ta.EMASeries(closes, e.p.EMAShort),
		ta.EMASeries(closes, e.p.EMALong),
		ta.RSISeries(closes, e.p.RSIPeriod),
		macd, macdSig, macdHist,
		bbHigh, bbLow,
		ta.ATRSeries(highs, lows, closes, e.p.ATRPeriod),
		ta.StochKSeries(highs, lows, closes, e.p.StochPeriod),
		ta.OBVSeries(closes, vols),
		ta.CMFSeries(highs, lows, closes, vols, e.p.CMFWindow),
		aroonUp, aroonDown,
	}

	m := &Matrix{Names: Names}
	for i := range s {
		row := make([]float64, len(cols))
		ok := true
		for j, col := range cols {
			if math.IsNaN(col[i]) {
				ok = false
				break
			}
			row[j] = col[i]
		}
		if !ok {
			continue
		}
		m.Rows = append(m.Rows, row)
		m.Bars = append(m.Bars, s[i])
	}
	return m
}
