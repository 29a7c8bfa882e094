package timeseries

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Dataset holds paired input/output samples (t, u, y) of a single-input
// single-output system. All three columns have the same length and T is
// non-decreasing.
type Dataset struct {
	T    []float64
	U    []float64
	Y    []float64
	Name string
}

// NewDataset validates and wraps the given columns. A nil t is replaced by the
// sample index 0..n-1. The slices are not copied.
func NewDataset(t, u, y []float64) (*Dataset, error) {
	if len(u) != len(y) {
		return nil, fmt.Errorf("%w: len(u)=%d len(y)=%d", ErrLengthMismatch, len(u), len(y))
	}
	if len(y) == 0 {
		return nil, ErrEmpty
	}
	if t == nil {
		t = indexAxis(len(y))
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf("%w: len(t)=%d len(y)=%d", ErrLengthMismatch, len(t), len(y))
	}
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return nil, fmt.Errorf("%w: t[%d]=%g < t[%d]=%g", ErrNotMonotonic, i, t[i], i-1, t[i-1])
		}
	}
	for i := range y {
		if !isFinite(u[i]) || !isFinite(y[i]) {
			return nil, fmt.Errorf("timeseries: non-finite sample at index %d", i)
		}
	}
	return &Dataset{T: t, U: u, Y: y}, nil
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Input returns the input channel as a Series sharing the dataset's storage.
func (d *Dataset) Input() *Series {
	return &Series{Time: d.T, Values: d.U, Name: "u"}
}

// Output returns the output channel as a Series sharing the dataset's storage.
func (d *Dataset) Output() *Series {
	return &Series{Time: d.T, Values: d.Y, Name: "y"}
}

// Slice returns a copy of samples start..end (exclusive).
func (d *Dataset) Slice(start, end int) *Dataset {
	start, end = clampRange(start, end, d.Len())
	return &Dataset{
		T:    copyRange(d.T, start, end),
		U:    copyRange(d.U, start, end),
		Y:    copyRange(d.Y, start, end),
		Name: d.Name,
	}
}

// Copy creates a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	return d.Slice(0, d.Len())
}

// Split divides the dataset into an estimation part holding the given fraction
// of samples and a validation part holding the rest.
func (d *Dataset) Split(fraction float64) (*Dataset, *Dataset) {
	cut := int(math.Round(fraction * float64(d.Len())))
	return d.Slice(0, cut), d.Slice(cut, d.Len())
}

// SampleTime returns the mean sampling interval and whether the sampling is
// uniform within a relative tolerance of 1e-6.
func (d *Dataset) SampleTime() (float64, bool) {
	n := len(d.T)
	if n < 2 {
		return 0, false
	}
	mean := (d.T[n-1] - d.T[0]) / float64(n-1)
	for i := 1; i < n; i++ {
		if !scalar.EqualWithinRel(d.T[i]-d.T[i-1], mean, 1e-6) {
			return mean, false
		}
	}
	return mean, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
