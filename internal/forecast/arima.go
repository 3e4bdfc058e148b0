package forecast

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ARParams configures the autoregressive-integrated model fitted on price
// differences: Lags autoregressive terms, Diff further differencing passes
// and Steps forecast steps.
type ARParams struct {
	Lags  int
	Diff  int
	Steps int
}

func DefaultARParams() ARParams {
	return ARParams{Lags: 5, Diff: 1, Steps: 30}
}

// MinObservations is the shortest differenced series the fit accepts: the
// stationarized series must yield an overdetermined least-squares system.
func (p ARParams) MinObservations() int {
	return 2*p.Lags + p.Diff + 1
}

// ForecastDiffs fits the AR model on the (further differenced) input series
// and returns Steps forecast values re-integrated back to the input's level.
func ForecastDiffs(diffs []float64, p ARParams) ([]float64, error) {
	if len(diffs) < p.MinObservations() {
		return nil, ErrInsufficientData
	}

	z := diffs
	// lasts[k] is the final observed value at differencing level k, needed
	// to undo each pass during reconstruction.
	lasts := make([]float64, p.Diff)
	for d := 0; d < p.Diff; d++ {
		lasts[d] = z[len(z)-1]
		z = difference(z)
	}

	coef, intercept := fitAR(z, p.Lags)
	for _, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrModelFit
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, ErrModelFit
	}

	// Recursive multi-step forecast at the fully differenced level.
	hist := append([]float64(nil), z...)
	zHat := make([]float64, p.Steps)
	for h := 0; h < p.Steps; h++ {
		v := intercept
		for l := 1; l <= p.Lags; l++ {
			v += coef[l-1] * hist[len(hist)-l]
		}
		zHat[h] = v
		hist = append(hist, v)
	}

	// Integrate back up to the level of the input series.
	out := zHat
	for d := p.Diff - 1; d >= 0; d-- {
		acc := lasts[d]
		level := make([]float64, p.Steps)
		for h := 0; h < p.Steps; h++ {
			acc += out[h]
			level[h] = acc
		}
		out = level
	}
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrModelFit
		}
	}
	return out, nil
}

// fitAR estimates AR coefficients plus intercept by ordinary least squares.
// Degenerate series (constant, or a rank-deficient design) fall back to the
// intercept-only mean model instead of failing the whole request.
func fitAR(z []float64, lags int) (coef []float64, intercept float64) {
	mean := 0.0
	for _, v := range z {
		mean += v
	}
	mean /= float64(len(z))

	constant := true
	for _, v := range z {
		if v != z[0] {
			constant = false
			break
		}
	}
	if constant {
		return make([]float64, lags), mean
	}

	rows := len(z) - lags
	cols := lags + 1
	x := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	for t := lags; t < len(z); t++ {
		r := t - lags
		x.Set(r, 0, 1)
		for l := 1; l <= lags; l++ {
			x.Set(r, l, z[t-l])
		}
		y.SetVec(r, z[t])
	}

	var qr mat.QR
	qr.Factorize(x)
	beta := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(beta, false, y); err != nil {
		if _, conditioned := err.(mat.Condition); !conditioned {
			return make([]float64, lags), mean
		}
	}

	coef = make([]float64, lags)
	for l := 1; l <= lags; l++ {
		coef[l-1] = beta.AtVec(l)
	}
	intercept = beta.AtVec(0)
	for _, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return make([]float64, lags), mean
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return make([]float64, lags), mean
	}
	return coef, intercept
}

func difference(vals []float64) []float64 {
	out := make([]float64, len(vals)-1)
	for i := 1; i < len(vals); i++ {
		out[i-1] = vals[i] - vals[i-1]
	}
	return out
}
