package stats

import (
	"math"
)

// AICc calculates the corrected Akaike Information Criterion.
// AICc = AIC + 2(k)(k+1)/(n-k-1) where k is number of parameters.
// This corrects for small sample sizes.
func AICc(aic float64, nObs int, nParams int) float64 {
	k := float64(nParams)
	n := float64(nObs)

	if n-k-1 <= 0 {
		return math.Inf(1)
	}

	correction := 2 * k * (k + 1) / (n - k - 1)
	return aic + correction
}

// InformationCriteria holds AIC, AICc, BIC and FPE for a fitted model.
type InformationCriteria struct {
	AIC    float64
	AICc   float64
	BIC    float64
	FPE    float64
	LogLik float64
}

// GaussianLogLik returns the concentrated Gaussian log-likelihood of n
// residuals with residual sum of squares rss.
func GaussianLogLik(rss float64, nObs int) float64 {
	n := float64(nObs)
	if nObs == 0 {
		return math.NaN()
	}
	if rss <= 0 {
		return math.Inf(1)
	}
	return -0.5 * n * (1 + math.Log(2*math.Pi*rss/n))
}

// FPE calculates Akaike's final prediction error V*(1+k/n)/(1-k/n) where V
// is the mean squared residual.
func FPE(rss float64, nObs int, nParams int) float64 {
	n := float64(nObs)
	k := float64(nParams)
	if n <= k {
		return math.Inf(1)
	}
	v := rss / n
	return v * (1 + k/n) / (1 - k/n)
}

// CalculateIC calculates all information criteria from the residual sum of
// squares of a least-squares fit.
func CalculateIC(rss float64, nObs int, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)
	logLik := GaussianLogLik(rss, nObs)

	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(n)

	return &InformationCriteria{
		AIC:    aic,
		AICc:   AICc(aic, nObs, nParams),
		BIC:    bic,
		FPE:    FPE(rss, nObs, nParams),
		LogLik: logLik,
	}
}
