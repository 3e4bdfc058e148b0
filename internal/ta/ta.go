package ta

import "math"

// Series-valued indicators: each returns a slice aligned 1:1 with the input,
// with NaN marking positions whose trailing window is not yet full. Values at
// index i depend only on inputs at indices <= i.

func SMASeries(vals []float64, n int) []float64 {
	out := nans(len(vals))
	if n <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= n {
			sum -= vals[i-n]
		}
		if i >= n-1 {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// EMASeries seeds with the simple average of the first n values, then applies
// the standard 2/(n+1) smoothing.
func EMASeries(vals []float64, n int) []float64 {
	out := nans(len(vals))
	if n <= 0 || len(vals) < n {
		return out
	}
	seed := 0.0
	for i := 0; i < n; i++ {
		seed += vals[i]
	}
	ema := seed / float64(n)
	out[n-1] = ema
	alpha := 2.0 / float64(n+1)
	for i := n; i < len(vals); i++ {
		ema = alpha*vals[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

// RSISeries uses Wilder smoothing over the given period.
func RSISeries(closes []float64, period int) []float64 {
	out := nans(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}
	gain, loss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	out[period] = rsiFrom(avgGain, avgLoss)
	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		g, l := 0.0, 0.0
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
		out[i] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// MACDSeries returns the MACD line (fast EMA - slow EMA), its signal line and
// the histogram (line - signal).
func MACDSeries(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	emaFast := EMASeries(closes, fast)
	emaSlow := EMASeries(closes, slow)
	line = nans(len(closes))
	for i := range closes {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}
	sig = emaOverValid(line, signal)
	hist = nans(len(closes))
	for i := range closes {
		if !math.IsNaN(line[i]) && !math.IsNaN(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return line, sig, hist
}

// emaOverValid applies an EMA to the non-NaN suffix of vals.
func emaOverValid(vals []float64, n int) []float64 {
	out := nans(len(vals))
	start := -1
	for i, v := range vals {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 || len(vals)-start < n {
		return out
	}
	inner := EMASeries(vals[start:], n)
	copy(out[start:], inner)
	return out
}

func StdDevSeries(vals []float64, n int) []float64 {
	out := nans(len(vals))
	if n <= 0 {
		return out
	}
	mean := SMASeries(vals, n)
	for i := n - 1; i < len(vals); i++ {
		s := 0.0
		for j := i - n + 1; j <= i; j++ {
			d := vals[j] - mean[i]
			s += d * d
		}
		out[i] = math.Sqrt(s / float64(n))
	}
	return out
}

// BollingerSeries returns the upper and lower bands at k standard deviations
// around the n-period simple moving average.
func BollingerSeries(closes []float64, n int, k float64) (upper, lower []float64) {
	mid := SMASeries(closes, n)
	sd := StdDevSeries(closes, n)
	upper = nans(len(closes))
	lower = nans(len(closes))
	for i := range closes {
		if !math.IsNaN(mid[i]) && !math.IsNaN(sd[i]) {
			upper[i] = mid[i] + k*sd[i]
			lower[i] = mid[i] - k*sd[i]
		}
	}
	return upper, lower
}

// ATRSeries uses Wilder smoothing of the true range.
func ATRSeries(highs, lows, closes []float64, period int) []float64 {
	out := nans(len(closes))
	if period <= 0 || len(closes) < period+1 ||
		len(highs) != len(closes) || len(lows) != len(closes) {
		return out
	}
	trs := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		tr := highs[i] - lows[i]
		tr = math.Max(tr, math.Abs(highs[i]-closes[i-1]))
		tr = math.Max(tr, math.Abs(lows[i]-closes[i-1]))
		trs[i] = tr
	}
	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += trs[i]
	}
	atr := sum / float64(period)
	out[period] = atr
	for i := period + 1; i < len(closes); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
		out[i] = atr
	}
	return out
}

// StochKSeries is the raw %K stochastic oscillator over the given lookback.
func StochKSeries(highs, lows, closes []float64, period int) []float64 {
	out := nans(len(closes))
	if period <= 0 || len(highs) != len(closes) || len(lows) != len(closes) {
		return out
	}
	for i := period - 1; i < len(closes); i++ {
		hh := highs[i]
		ll := lows[i]
		for j := i - period + 1; j < i; j++ {
			hh = math.Max(hh, highs[j])
			ll = math.Min(ll, lows[j])
		}
		if hh == ll {
			out[i] = 0
			continue
		}
		out[i] = 100.0 * (closes[i] - ll) / (hh - ll)
	}
	return out
}

// OBVSeries is the cumulative on-balance volume, defined from the first bar.
func OBVSeries(closes, vols []float64) []float64 {
	out := nans(len(closes))
	if len(closes) == 0 || len(vols) != len(closes) {
		return out
	}
	obv := vols[0]
	out[0] = obv
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += vols[i]
		case closes[i] < closes[i-1]:
			obv -= vols[i]
		}
		out[i] = obv
	}
	return out
}

// CMFSeries is the Chaikin money flow over an n-bar window.
func CMFSeries(highs, lows, closes, vols []float64, n int) []float64 {
	out := nans(len(closes))
	if n <= 0 || len(highs) != len(closes) || len(lows) != len(closes) || len(vols) != len(closes) {
		return out
	}
	mfv := make([]float64, len(closes))
	for i := range closes {
		if highs[i] == lows[i] {
			continue
		}
		mult := ((closes[i] - lows[i]) - (highs[i] - closes[i])) / (highs[i] - lows[i])
		mfv[i] = mult * vols[i]
	}
	for i := n - 1; i < len(closes); i++ {
		sumMFV, sumVol := 0.0, 0.0
		for j := i - n + 1; j <= i; j++ {
			sumMFV += mfv[j]
			sumVol += vols[j]
		}
		if sumVol == 0 {
			out[i] = 0
			continue
		}
		out[i] = sumMFV / sumVol
	}
	return out
}

// AroonSeries measures bars since the window high/low, scaled to 0..100. The
// window spans n+1 bars including the current one.
func AroonSeries(highs, lows []float64, n int) (up, down []float64) {
	up = nans(len(highs))
	down = nans(len(highs))
	if n <= 0 || len(lows) != len(highs) {
		return up, down
	}
	for i := n; i < len(highs); i++ {
		hiIdx, loIdx := i-n, i-n
		for j := i - n; j <= i; j++ {
			if highs[j] >= highs[hiIdx] {
				hiIdx = j
			}
			if lows[j] <= lows[loIdx] {
				loIdx = j
			}
		}
		up[i] = 100.0 * float64(n-(i-hiIdx)) / float64(n)
		down[i] = 100.0 * float64(n-(i-loIdx)) / float64(n)
	}
	return up, down
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
