package stats

import (
	"math"

	"github.com/sartorproj/goarx/timeseries"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// centered returns values minus their mean.
func centered(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	floats.AddConst(-stat.Mean(values, nil), out)
	return out
}

// ACF calculates the Autocorrelation Function for the given series.
// Returns ACF values for lags 0 to maxLag, or nil for a constant series.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	n := series.Len()
	maxLag = min(maxLag, n-1)
	if maxLag < 0 {
		return nil
	}

	c := centered(series.Values)
	c0 := floats.Dot(c, c)
	if c0 == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		acf[k] = floats.Dot(c[k:], c[:n-k]) / c0
	}
	return acf
}

// CrossCorrelation calculates the normalized cross-correlation between x and
// y for lags 0 to maxLag, where lag k pairs x[i] with y[i+k]. Both series
// must have the same length. Returns nil when either series is constant.
func CrossCorrelation(x, y *timeseries.Series, maxLag int) []float64 {
	n := x.Len()
	if n != y.Len() || n == 0 {
		return nil
	}
	maxLag = min(maxLag, n-1)
	if maxLag < 0 {
		return nil
	}

	cx := centered(x.Values)
	cy := centered(y.Values)
	norm := math.Sqrt(floats.Dot(cx, cx) * floats.Dot(cy, cy))
	if norm == 0 {
		return nil
	}

	ccf := make([]float64, maxLag+1)
	for k := range ccf {
		ccf[k] = floats.Dot(cx[:n-k], cy[k:]) / norm
	}
	return ccf
}

// ACFResult holds correlation values with their 95% white-noise bound.
type ACFResult struct {
	Lags       []int
	Values     []float64
	ConfBounds float64 // ±1.96/sqrt(n)
}

// Significant returns the lags above zero whose value exceeds the bound.
func (r *ACFResult) Significant() []int {
	return SignificantLags(r.Values, r.ConfBounds)
}

// ACFWithConfidence calculates ACF with confidence bounds.
func ACFWithConfidence(series *timeseries.Series, maxLag int) *ACFResult {
	acf := ACF(series, maxLag)
	if acf == nil {
		return nil
	}
	return withBounds(acf, series.Len())
}

// CCFWithConfidence calculates the cross-correlation with confidence bounds.
func CCFWithConfidence(x, y *timeseries.Series, maxLag int) *ACFResult {
	ccf := CrossCorrelation(x, y, maxLag)
	if ccf == nil {
		return nil
	}
	return withBounds(ccf, x.Len())
}

func withBounds(values []float64, n int) *ACFResult {
	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}
	return &ACFResult{
		Lags:       lags,
		Values:     values,
		ConfBounds: 1.96 / math.Sqrt(float64(n)),
	}
}

// SignificantLags returns the lags where correlation values exceed the
// confidence bound. Lag 0 is skipped.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
