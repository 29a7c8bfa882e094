// Package goarx provides batch ARX system identification.
//
// GoARX fits linear difference-equation models with exogenous input,
//
//	y[k] = a1*y[k-1] + ... + a_na*y[k-na] + b1*u[k-nk-1] + ... + b_nb*u[k-nk-nb],
//
// to recorded input/output data by SVD least squares, then predicts the
// output one step ahead or simulates it freely from the input alone.
//
// # Features
//
//   - Closed-form estimation with rank and condition reporting
//   - Step (one-step-ahead) and simulate (free-run) prediction
//   - Operating-point handling: none, init, mean or an estimated bias
//   - Steady-state gain with explicit undefined reporting
//   - Coefficient standard errors, t statistics and p-values
//   - Residual diagnostics (Ljung-Box, Durbin-Watson, residual/input CCF)
//   - Concurrent order search over (na, nb, nk) by AIC, AICc, BIC, FPE or
//     simulation error
//
// # Quick Start
//
// Identify a model from slices:
//
//	res, err := arx.Identify(t, u, y, 2, 2, 1, arx.ModeSimulate)
//	fmt.Println(res.Coefficients.A, res.Coefficients.B, res.Gain)
//
// Load CSV data and search for the order:
//
//	data, _ := timeseries.LoadCSV("data.csv", nil)
//	result, _ := autoarx.Search(ctx, data, autoarx.DefaultConfig())
//	pred, _ := result.Predict(data)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - arx: ARX models, regression, estimation and prediction
//   - autoarx: Automatic order selection
//   - stats: Residual tests, information criteria and error metrics
//   - timeseries: Input/output datasets and CSV utilities
//
// The arxid command wraps both workflows for CSV files.
//
// # References
//
//   - Ljung, L. (1999). System Identification: Theory for the User
//   - Söderström, T., & Stoica, P. (1989). System Identification
package goarx
