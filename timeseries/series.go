// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned when a series or dataset has no samples.
	ErrEmpty = errors.New("timeseries: no samples")
	// ErrLengthMismatch is returned when paired columns differ in length.
	ErrLengthMismatch = errors.New("timeseries: column lengths differ")
	// ErrNotMonotonic is returned when the time axis decreases.
	ErrNotMonotonic = errors.New("timeseries: time axis is not non-decreasing")
)

// Series represents a single sampled signal on a numeric time axis.
type Series struct {
	Time   []float64
	Values []float64
	Name   string
}

// New creates a new series from values, indexed 0..n-1.
func New(values []float64) *Series {
	return &Series{
		Time:   indexAxis(len(values)),
		Values: values,
	}
}

// NewWithTime creates a series with an explicit time axis.
func NewWithTime(t, values []float64) (*Series, error) {
	if len(t) != len(values) {
		return nil, ErrLengthMismatch
	}
	return &Series{
		Time:   t,
		Values: values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std calculates the standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Median returns the median value of the series.
func (s *Series) Median() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	start, end = clampRange(start, end, len(s.Values))
	if start >= end {
		return &Series{Time: []float64{}, Values: []float64{}, Name: s.Name}
	}

	return &Series{
		Time:   copyRange(s.Time, start, end),
		Values: copyRange(s.Values, start, end),
		Name:   s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	return &Series{
		Time:   copyRange(s.Time, 0, len(s.Time)),
		Values: copyRange(s.Values, 0, len(s.Values)),
		Name:   s.Name,
	}
}

// Shift returns a copy of the series with offset subtracted from every value.
func (s *Series) Shift(offset float64) *Series {
	out := s.Copy()
	floats.AddConst(-offset, out.Values)
	return out
}

func indexAxis(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i)
	}
	return t
}

func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}

func copyRange(src []float64, start, end int) []float64 {
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return []float64{}
	}
	out := make([]float64, end-start)
	copy(out, src[start:end])
	return out
}
