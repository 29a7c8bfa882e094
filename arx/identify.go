package arx

import (
	"github.com/sartorproj/goarx/timeseries"
)

// Result is the outcome of Identify.
type Result struct {
	Coefficients Coefficients
	Gain         float64
	GainDefined  bool
	GainErr      error // wraps ErrUnstableGain when the gain is undefined
	Prediction   *Prediction
	Estimate     *Estimate
	Model        *Model
}

// Identify fits an ARX(na, nb, nk) model to (t, u, y) and predicts y on the
// same data in the given mode. A nil t is replaced by the sample index.
//
// An undefined gain does not fail the call: it is reported through
// GainDefined and GainErr.
func Identify(t, u, y []float64, na, nb, nk int, mode Mode, opts ...Option) (*Result, error) {
	d, err := timeseries.NewDataset(t, u, y)
	if err != nil {
		return nil, err
	}

	m := New(na, nb, nk, opts...)
	if err := m.Fit(d); err != nil {
		return nil, err
	}

	pred, err := m.Predict(d, mode)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Coefficients: m.est.Coefficients.Clone(),
		Prediction:   pred,
		Estimate:     m.est,
		Model:        m,
	}
	res.Gain, res.GainErr = m.est.Gain()
	res.GainDefined = res.GainErr == nil
	return res, nil
}
