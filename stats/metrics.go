package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrorMetrics summarizes how closely predicted values track actual values.
type ErrorMetrics struct {
	N    int     // Number of compared pairs
	RMSE float64 // Root-mean-squared error
	MAE  float64 // Mean absolute error
	Fit  float64 // Normalized fit in percent, 100*(1-|y-yhat|/|y-mean(y)|)
	R2   float64 // Coefficient of determination
}

// Compare calculates error metrics between actual and predicted values.
// Pairs where the predicted value is NaN are skipped, so an aligned
// prediction with an undefined prefix can be passed directly.
func Compare(actual, predicted []float64) ErrorMetrics {
	n := min(len(actual), len(predicted))
	a := make([]float64, 0, n)
	p := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(predicted[i]) {
			continue
		}
		a = append(a, actual[i])
		p = append(p, predicted[i])
	}

	m := ErrorMetrics{N: len(a)}
	if m.N == 0 {
		m.RMSE, m.MAE, m.Fit, m.R2 = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return m
	}

	resid := make([]float64, m.N)
	floats.SubTo(resid, a, p)

	m.RMSE = floats.Norm(resid, 2) / math.Sqrt(float64(m.N))
	m.MAE = floats.Norm(resid, 1) / float64(m.N)

	mean := stat.Mean(a, nil)
	centered := make([]float64, m.N)
	copy(centered, a)
	floats.AddConst(-mean, centered)
	spread := floats.Norm(centered, 2)
	if spread == 0 {
		m.Fit, m.R2 = math.NaN(), math.NaN()
		return m
	}
	m.Fit = 100 * (1 - floats.Norm(resid, 2)/spread)
	m.R2 = stat.RSquaredFrom(p, a, nil)
	return m
}

// RMSE returns the root-mean-squared error over the defined pairs.
func RMSE(actual, predicted []float64) float64 {
	return Compare(actual, predicted).RMSE
}
