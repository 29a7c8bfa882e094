// Package stats provides statistical tests and analysis functions for
// validating identified input/output models.
//
// # Residual Whiteness
//
// A well-specified model leaves residuals that look like white noise:
//
//	// Ljung-Box test, H0: no autocorrelation up to lag h
//	lb := stats.LjungBox(residuals, 20, na+nb)
//	bp := stats.BoxPierce(residuals, 20, na+nb) // large-sample variant
//	if !lb.White() {
//	    // try a higher order
//	}
//
//	// First-order check
//	dw := stats.DurbinWatson(residuals.Values)
//
// # Residual/Input Independence
//
// Residuals that still correlate with past inputs point at a missing input
// lag or a wrong dead time:
//
//	ccf := stats.CCFWithConfidence(input, residuals, 20)
//	lags := stats.SignificantLags(ccf.Values, ccf.ConfBounds)
//
// # Autocorrelation
//
//	acf := stats.ACFWithConfidence(residuals, 20)
//	lags := acf.Significant() // residual structure the model missed
//
// # Information Criteria
//
// Compare model orders fitted on the same rows:
//
//	ic := stats.CalculateIC(rss, rows, params)
//	fmt.Printf("AIC=%.2f BIC=%.2f FPE=%.4g\n", ic.AIC, ic.BIC, ic.FPE)
//
// # Prediction Error
//
//	m := stats.Compare(y, yPred) // NaN predictions are skipped
//	fmt.Printf("RMSE=%.3f fit=%.1f%%\n", m.RMSE, m.Fit)
package stats
