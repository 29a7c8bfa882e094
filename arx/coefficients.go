package arx

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Coefficients holds the parameters of
//
//	y[k] = sum_i A[i-1]*y[k-i] + sum_j B[j-1]*u[k-nk-j] + C
//
// C is used only when HasBias is set.
type Coefficients struct {
	A       []float64
	B       []float64
	C       float64
	HasBias bool
}

// NewCoefficients splits a stacked parameter vector [a..., b..., (c)] into
// coefficients for the given order.
func NewCoefficients(theta []float64, order Order, bias bool) (Coefficients, error) {
	want := order.NumParams()
	if bias {
		want++
	}
	if len(theta) != want {
		return Coefficients{}, fmt.Errorf("%w: got %d parameters, %v needs %d",
			ErrDimensionMismatch, len(theta), order, want)
	}
	c := Coefficients{
		A:       append([]float64(nil), theta[:order.NA]...),
		B:       append([]float64(nil), theta[order.NA:order.NA+order.NB]...),
		HasBias: bias,
	}
	if bias {
		c.C = theta[want-1]
	}
	return c, nil
}

// Vector returns the stacked parameter vector [a..., b..., (c)].
func (c Coefficients) Vector() []float64 {
	v := make([]float64, 0, len(c.A)+len(c.B)+1)
	v = append(v, c.A...)
	v = append(v, c.B...)
	if c.HasBias {
		v = append(v, c.C)
	}
	return v
}

// Check verifies that the coefficient lengths match the order.
func (c Coefficients) Check(order Order) error {
	if len(c.A) != order.NA || len(c.B) != order.NB {
		return fmt.Errorf("%w: len(a)=%d len(b)=%d for %v",
			ErrDimensionMismatch, len(c.A), len(c.B), order)
	}
	return nil
}

// Gain returns the steady-state gain sum(b) / (1 - sum(a)). When
// |1 - sum(a)| <= GainTolerance the gain is undefined and an error wrapping
// ErrUnstableGain is returned.
func (c Coefficients) Gain() (float64, error) {
	den := 1 - floats.Sum(c.A)
	if math.Abs(den) <= GainTolerance {
		return 0, fmt.Errorf("%w: 1 - sum(a) = %g", ErrUnstableGain, den)
	}
	return floats.Sum(c.B) / den, nil
}

// Clone returns a deep copy.
func (c Coefficients) Clone() Coefficients {
	return Coefficients{
		A:       append([]float64(nil), c.A...),
		B:       append([]float64(nil), c.B...),
		C:       c.C,
		HasBias: c.HasBias,
	}
}
