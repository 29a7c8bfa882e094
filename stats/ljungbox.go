package stats

import (
	"github.com/sartorproj/goarx/timeseries"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// PortmanteauResult is the outcome of a Ljung-Box or Box-Pierce test.
// H0: no autocorrelation up to Lags.
type PortmanteauResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // lags - fitdf, at least 1
}

// White reports whether the null hypothesis of no autocorrelation survives at
// the 5% level.
func (r *PortmanteauResult) White() bool {
	return r.PValue >= 0.05
}

// LjungBox performs the Ljung-Box test on model residuals.
// fitdf is the number of estimated parameters (na + nb for ARX).
func LjungBox(series *timeseries.Series, lags, fitdf int) *PortmanteauResult {
	return portmanteau(series, lags, fitdf, true)
}

// BoxPierce performs the Box-Pierce test, the Ljung-Box statistic without
// the small-sample weighting (n+2)/(n-k).
func BoxPierce(series *timeseries.Series, lags, fitdf int) *PortmanteauResult {
	return portmanteau(series, lags, fitdf, false)
}

func portmanteau(series *timeseries.Series, lags, fitdf int, weighted bool) *PortmanteauResult {
	n := series.Len()
	if n < 10 || lags < 1 {
		return nil
	}
	lags = min(lags, n-1)

	acf := ACF(series, lags)
	if acf == nil {
		return nil
	}

	sq := make([]float64, lags)
	for k := 1; k <= lags; k++ {
		sq[k-1] = acf[k] * acf[k]
		if weighted {
			sq[k-1] *= float64(n+2) / float64(n-k)
		}
	}
	q := float64(n) * floats.Sum(sq)
	dof := max(lags-fitdf, 1)

	return &PortmanteauResult{
		Statistic: q,
		PValue:    chiSquaredSurvival(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

func chiSquaredSurvival(x float64, k int) float64 {
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: float64(k)}.Survival(x)
}

// DurbinWatsonResult holds the Durbin-Watson statistic. Values near 2 mean
// no first-order autocorrelation, below 2 positive and above 2 negative.
type DurbinWatsonResult struct {
	Statistic float64
}

// DurbinWatson calculates the Durbin-Watson statistic for first-order
// autocorrelation. Returns nil for fewer than two or all-zero residuals.
func DurbinWatson(residuals []float64) *DurbinWatsonResult {
	n := len(residuals)
	if n < 2 {
		return nil
	}
	den := floats.Dot(residuals, residuals)
	if den == 0 {
		return nil
	}

	diff := make([]float64, n-1)
	floats.SubTo(diff, residuals[1:], residuals[:n-1])
	return &DurbinWatsonResult{Statistic: floats.Dot(diff, diff) / den}
}
