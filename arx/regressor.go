package arx

import (
	"fmt"

	"github.com/sartorproj/goarx/timeseries"
	"gonum.org/v1/gonum/mat"
)

// Regressors is the linear system Phi*theta ≈ Target built from a dataset.
//
// Row r corresponds to sample k = Start + r and holds
//
//	[y[k-1] .. y[k-na], u[k-nk-1] .. u[k-nk-nb], (1)]
//
// with Target[r] = y[k]. The trailing 1 is present only with ShiftCalc.
type Regressors struct {
	Phi    *mat.Dense
	Target *mat.VecDense
	Start  int
	Order  Order
	Bias   bool
}

// Rows returns the number of regression rows.
func (r *Regressors) Rows() int {
	rows, _ := r.Phi.Dims()
	return rows
}

// Cols returns the number of unknowns.
func (r *Regressors) Cols() int {
	_, cols := r.Phi.Dims()
	return cols
}

// BuildRegressors assembles the regressor matrix for the given order.
// Rows start at MaxLag() unless WithStart moves them later. Fewer than
// MaxLag()+1 samples yield ErrInsufficientData.
func BuildRegressors(d *timeseries.Dataset, order Order, opts ...Option) (*Regressors, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	s := newSettings(opts)
	return buildRegressors(d, order, s)
}

func buildRegressors(d *timeseries.Dataset, order Order, s settings) (*Regressors, error) {
	n := d.Len()
	if len(d.U) != n {
		return nil, fmt.Errorf("%w: len(u)=%d len(y)=%d", timeseries.ErrLengthMismatch, len(d.U), n)
	}

	start := order.MaxLag()
	if s.start != 0 {
		if s.start < start {
			return nil, fmt.Errorf("arx: start %d is before max lag %d of %v", s.start, start, order)
		}
		start = s.start
	}
	if n <= start {
		return nil, fmt.Errorf("%w: %v needs at least %d samples, got %d",
			ErrInsufficientData, order, start+1, n)
	}

	bias := s.shift == ShiftCalc
	cols := order.NumParams()
	if bias {
		cols++
	}
	rows := n - start

	phi := mat.NewDense(rows, cols, nil)
	target := mat.NewVecDense(rows, nil)

	for r := 0; r < rows; r++ {
		k := start + r
		row := phi.RawRowView(r)
		for i := 1; i <= order.NA; i++ {
			row[i-1] = d.Y[k-i]
		}
		for j := 1; j <= order.NB; j++ {
			row[order.NA+j-1] = d.U[k-order.NK-j]
		}
		if bias {
			row[cols-1] = 1
		}
		target.SetVec(r, d.Y[k])
	}

	return &Regressors{
		Phi:    phi,
		Target: target,
		Start:  start,
		Order:  order,
		Bias:   bias,
	}, nil
}
