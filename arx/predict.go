package arx

import (
	"fmt"
	"math"

	"github.com/sartorproj/goarx/timeseries"
)

// Prediction is a model output aligned with the dataset it was computed on.
// Values before Start have no complete lag history and are undefined.
type Prediction struct {
	Mode   Mode
	Start  int
	values []float64
}

// Len returns the number of samples, defined or not.
func (p *Prediction) Len() int {
	return len(p.values)
}

// Defined reports whether sample k has a prediction.
func (p *Prediction) Defined(k int) bool {
	return k >= p.Start && k < len(p.values)
}

// At returns the prediction for sample k and whether it is defined.
func (p *Prediction) At(k int) (float64, bool) {
	if !p.Defined(k) {
		return 0, false
	}
	return p.values[k], true
}

// Values returns a copy of all samples with NaN marking undefined ones.
func (p *Prediction) Values() []float64 {
	return append([]float64(nil), p.values...)
}

// DefinedValues returns a copy of the samples from Start on.
func (p *Prediction) DefinedValues() []float64 {
	if p.Start >= len(p.values) {
		return nil
	}
	return append([]float64(nil), p.values[p.Start:]...)
}

// Predict evaluates the model on a dataset.
//
// In ModeStep every prediction uses the measured past outputs. In
// ModeSimulate the measured outputs seed the first MaxLag() samples and
// later samples feed back the model's own predictions. Both modes agree at
// Start.
func Predict(c Coefficients, d *timeseries.Dataset, order Order, mode Mode) (*Prediction, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := c.Check(order); err != nil {
		return nil, err
	}
	if mode != ModeStep && mode != ModeSimulate {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}

	n := d.Len()
	if len(d.U) != n {
		return nil, fmt.Errorf("%w: len(u)=%d len(y)=%d", timeseries.ErrLengthMismatch, len(d.U), n)
	}
	start := order.MaxLag()
	if n <= start {
		return nil, fmt.Errorf("%w: %v needs at least %d samples, got %d",
			ErrInsufficientData, order, start+1, n)
	}

	out := make([]float64, n)
	for k := 0; k < start; k++ {
		out[k] = math.NaN()
	}

	past := d.Y
	if mode == ModeSimulate {
		past = make([]float64, n)
		copy(past[:start], d.Y[:start])
	}

	for k := start; k < n; k++ {
		v := 0.0
		if c.HasBias {
			v = c.C
		}
		for i := 1; i <= order.NA; i++ {
			v += c.A[i-1] * past[k-i]
		}
		for j := 1; j <= order.NB; j++ {
			v += c.B[j-1] * d.U[k-order.NK-j]
		}
		out[k] = v
		if mode == ModeSimulate {
			past[k] = v
		}
	}

	return &Prediction{Mode: mode, Start: start, values: out}, nil
}

// offset returns a copy of p with y0 added to every defined value.
func (p *Prediction) offset(y0 float64) *Prediction {
	out := p.Values()
	if y0 != 0 {
		for k := p.Start; k < len(out); k++ {
			out[k] += y0
		}
	}
	return &Prediction{Mode: p.Mode, Start: p.Start, values: out}
}
