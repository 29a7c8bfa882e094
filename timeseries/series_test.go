package timeseries

import (
	"errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
		if s.Time[i] != float64(i) {
			t.Errorf("Expected time %d at index %d, got %f", i, i, s.Time[i])
		}
	}
}

func TestNewWithTimeLengthMismatch(t *testing.T) {
	_, err := NewWithTime([]float64{0, 1}, []float64{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Expected ErrLengthMismatch, got %v", err)
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}

	if New([]float64{3}).Variance() != 0 {
		t.Error("Expected zero variance for a single value")
	}
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := math.Sqrt(4.571428571428571)

	result := s.Std()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected std %f, got %f", expected, result)
	}
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}

	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}

	empty := New(nil)
	if !math.IsNaN(empty.Min()) || !math.IsNaN(empty.Max()) {
		t.Error("Expected NaN min/max for empty series")
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"odd", []float64{1, 3, 5}, 3.0},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{5}, 5.0},
		{"unsorted", []float64{5, 1, 3}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Median()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected median %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	sliced := s.Slice(1, 4)

	expected := []float64{2, 3, 4}
	if len(sliced.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(sliced.Values))
	}

	for i, v := range sliced.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
	if sliced.Time[0] != 1 {
		t.Errorf("Expected time axis to start at 1, got %f", sliced.Time[0])
	}

	if s.Slice(3, 2).Len() != 0 {
		t.Error("Expected empty slice for inverted range")
	}
}

func TestShift(t *testing.T) {
	s := New([]float64{3, 4, 5})
	shifted := s.Shift(3)

	expected := []float64{0, 1, 2}
	for i, v := range shifted.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
	if s.Values[0] != 3 {
		t.Error("Shift modified the original series")
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()

	// Modify original
	s.Values[0] = 100

	// Copy should be unchanged
	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
}
