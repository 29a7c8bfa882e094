// Package autoarx implements automatic ARX order selection.
//
// Search fits every (na, nb, nk) in a grid and keeps the one with the lowest
// information criterion. All candidates are regressed on the same rows, the
// ones the largest order in the grid needs, so their criteria compare like
// with like.
//
// # Basic Usage
//
//	config := autoarx.DefaultConfig()
//	config.Criterion = autoarx.CriterionBIC
//	result, err := autoarx.Search(ctx, data, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Best model: %v, BIC %.2f, %d models evaluated\n",
//	    result.Order, result.Criterion, result.ModelsEvaluated)
//	pred, _ := result.Predict(validation)
//
// # Criteria
//
//   - aic, aicc, bic: Gaussian likelihood of the regression residuals
//   - fpe: Akaike's final prediction error
//   - sim: RMSE of the free-run simulation, the criterion to use when the
//     model will be simulated rather than used as a one-step predictor
//
// Candidates are fitted concurrently, at most Config.Workers at a time. Ties
// are broken towards fewer parameters and then lower na, nb and nk, so the
// result does not depend on scheduling.
package autoarx
