// Package arx implements batch identification of ARX (AutoRegressive with
// eXogenous input) models.
//
// An ARX(na, nb, nk) model predicts the current output from past outputs and
// delayed past inputs:
//
//	y[k] = a1*y[k-1] + ... + a_na*y[k-na] + b1*u[k-nk-1] + ... + b_nb*u[k-nk-nb]
//
// The coefficients are linear in the data, so they are estimated in closed
// form by SVD least squares. A rank-deficient regression still yields the
// minimum-norm solution; Estimate reports its rank and condition number.
//
// # Basic Usage
//
//	res, err := arx.Identify(t, u, y, 2, 2, 1, arx.ModeSimulate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Coefficients.A, res.Coefficients.B)
//	if res.GainDefined {
//	    fmt.Printf("K = %.3f\n", res.Gain)
//	}
//
// # Models
//
// Fit on one dataset and validate on another:
//
//	est, val := data.Split(0.7)
//	model := arx.New(2, 2, 1, arx.WithShift(arx.ShiftMean))
//	if err := model.Fit(est); err != nil {
//	    log.Fatal(err)
//	}
//	pred, _ := model.Predict(val, arx.ModeSimulate)
//	fmt.Print(model.Summary())
//
// Predictions are aligned with the dataset. Samples before Start have no
// complete lag history; Prediction.At reports them as undefined.
//
// # Lower-level API
//
//	r, _ := arx.BuildRegressors(data, arx.Order{NA: 2, NB: 2, NK: 1})
//	e, _ := arx.EstimateCoefficients(r)
//	if err := e.CheckRank(); err != nil {
//	    // ill-conditioned data
//	}
//	p, _ := arx.Predict(e.Coefficients, data, r.Order, arx.ModeStep)
//
// For automatic order selection, use the autoarx package.
package arx
