package arx

import (
	"fmt"
	"math"

	"github.com/sartorproj/goarx/timeseries"
	"gonum.org/v1/gonum/stat"
)

// Model is an ARX model with offset handling.
type Model struct {
	Order Order
	Shift Shift

	settings   settings
	fitted     bool
	est        *Estimate
	data       *timeseries.Dataset
	u0, y0     float64
	fittedVals []float64
}

// New creates a new ARX model with the specified order. The order is
// validated by Fit.
func New(na, nb, nk int, opts ...Option) *Model {
	s := newSettings(opts)
	return &Model{
		Order:    Order{NA: na, NB: nb, NK: nk},
		Shift:    s.shift,
		settings: s,
	}
}

// Fit estimates the coefficients from the dataset. On error the model keeps
// its previous state.
func (m *Model) Fit(d *timeseries.Dataset) error {
	if err := m.Order.Validate(); err != nil {
		return err
	}
	if m.Shift < ShiftNone || m.Shift > ShiftCalc {
		return fmt.Errorf("%w: %v", ErrInvalidShift, m.Shift)
	}
	if len(d.U) != d.Len() {
		return fmt.Errorf("%w: len(u)=%d len(y)=%d", timeseries.ErrLengthMismatch, len(d.U), d.Len())
	}
	if need := m.Order.MaxLag(); d.Len() <= need {
		return fmt.Errorf("%w: %v needs at least %d samples, got %d",
			ErrInsufficientData, m.Order, need+1, d.Len())
	}

	u0, y0 := operatingPoint(d, m.Shift)
	shifted := shiftData(d, u0, y0)

	s := m.settings
	s.shift = m.Shift
	r, err := buildRegressors(shifted, m.Order, s)
	if err != nil {
		return err
	}
	est, err := estimate(r, s)
	if err != nil {
		return err
	}

	fitted := make([]float64, d.Len())
	for k := 0; k < r.Start; k++ {
		fitted[k] = math.NaN()
	}
	for i, res := range est.residuals {
		k := r.Start + i
		fitted[k] = d.Y[k] - res
	}

	m.est = est
	m.data = d
	m.u0, m.y0 = u0, y0
	m.fittedVals = fitted
	m.fitted = true
	return nil
}

func operatingPoint(d *timeseries.Dataset, shift Shift) (u0, y0 float64) {
	switch shift {
	case ShiftInit:
		return d.U[0], d.Y[0]
	case ShiftMean:
		return stat.Mean(d.U, nil), stat.Mean(d.Y, nil)
	}
	return 0, 0
}

func shiftData(d *timeseries.Dataset, u0, y0 float64) *timeseries.Dataset {
	if u0 == 0 && y0 == 0 {
		return d
	}
	return &timeseries.Dataset{
		T:    d.T,
		U:    d.Input().Shift(u0).Values,
		Y:    d.Output().Shift(y0).Values,
		Name: d.Name,
	}
}

// Predict evaluates the fitted model on d, which may differ from the
// estimation data. Offsets found during Fit are applied to d and the
// prediction is returned in the original units.
func (m *Model) Predict(d *timeseries.Dataset, mode Mode) (*Prediction, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	p, err := Predict(m.est.Coefficients, shiftData(d, m.u0, m.y0), m.Order, mode)
	if err != nil {
		return nil, err
	}
	return p.offset(m.y0), nil
}

// Coefficients returns a copy of the fitted coefficients.
func (m *Model) Coefficients() (Coefficients, error) {
	if !m.fitted {
		return Coefficients{}, ErrNotFitted
	}
	return m.est.Coefficients.Clone(), nil
}

// Gain returns the steady-state gain of the fitted model.
func (m *Model) Gain() (float64, error) {
	if !m.fitted {
		return 0, ErrNotFitted
	}
	return m.est.Gain()
}

// Estimate returns the estimation diagnostics, or nil before Fit.
func (m *Model) Estimate() *Estimate {
	return m.est
}

// Offsets returns the input and output operating point removed before
// regression.
func (m *Model) Offsets() (u0, y0 float64) {
	return m.u0, m.y0
}

// Residuals returns the one-step residuals, one per regression row.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	return m.est.Residuals()
}

// FittedValues returns the one-step predictions on the estimation data,
// aligned with it. Samples before the first regression row are NaN.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	return append([]float64(nil), m.fittedVals...)
}
