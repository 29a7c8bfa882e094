package arx

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Estimate is the least-squares solution of a regressor system together with
// its numerical diagnostics.
type Estimate struct {
	Coefficients Coefficients

	order     Order
	start     int
	rows      int
	cols      int
	rank      int
	singular  []float64
	residuals []float64
	rss       float64
	stdErrors []float64
}

// EstimateCoefficients solves the regressor system in the least-squares
// sense through a thin SVD. Singular values below the rank tolerance are
// discarded, so a rank-deficient system yields the minimum-norm solution.
// With WithStrictRank a rank-deficient system fails with ErrSingularSystem.
func EstimateCoefficients(r *Regressors, opts ...Option) (*Estimate, error) {
	return estimate(r, newSettings(opts))
}

func estimate(r *Regressors, s settings) (*Estimate, error) {
	rows, cols := r.Phi.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(r.Phi, mat.SVDThin); !ok {
		return nil, errors.New("arx: SVD factorization failed")
	}
	sv := svd.Values(nil)
	rank := svd.Rank(s.rankTol)

	theta := mat.NewVecDense(cols, nil)
	if rank > 0 {
		svd.SolveVecTo(theta, r.Target, rank)
	}

	e := &Estimate{
		order:    r.Order,
		start:    r.Start,
		rows:     rows,
		cols:     cols,
		rank:     rank,
		singular: sv,
	}

	log := s.logger.WithFields(logrus.Fields{
		"na":   r.Order.NA,
		"nb":   r.Order.NB,
		"nk":   r.Order.NK,
		"rows": rows,
		"rank": rank,
		"cond": e.Cond(),
	})

	if rank < cols {
		if s.strictRank {
			return nil, fmt.Errorf("%w: rank %d of %d columns", ErrSingularSystem, rank, cols)
		}
		log.Warn("rank-deficient regression, using minimum-norm solution")
	}

	coeffs, err := NewCoefficients(theta.RawVector().Data, r.Order, r.Bias)
	if err != nil {
		return nil, err
	}
	e.Coefficients = coeffs

	var fitted mat.VecDense
	fitted.MulVec(r.Phi, theta)
	e.residuals = make([]float64, rows)
	floats.SubTo(e.residuals, r.Target.RawVector().Data, fitted.RawVector().Data)
	e.rss = floats.Dot(e.residuals, e.residuals)

	e.stdErrors = standardErrors(&svd, sv, rank, cols, e.Variance())

	if _, err := coeffs.Gain(); err != nil {
		log.WithError(err).Warn("steady-state gain undefined")
	}
	log.WithField("rss", e.rss).Debug("estimated coefficients")

	return e, nil
}

// standardErrors returns sqrt(diag(sigma2 * V S^-2 V^T)) restricted to the
// first rank singular directions.
func standardErrors(svd *mat.SVD, sv []float64, rank, cols int, sigma2 float64) []float64 {
	se := make([]float64, cols)
	if rank == 0 || math.IsNaN(sigma2) {
		for i := range se {
			se[i] = math.NaN()
		}
		return se
	}

	var v mat.Dense
	svd.VTo(&v)
	for i := 0; i < cols; i++ {
		row := v.RawRowView(i)
		sum := 0.0
		for j, vij := range row[:rank] {
			sum += vij * vij / (sv[j] * sv[j])
		}
		se[i] = math.Sqrt(sigma2 * sum)
	}
	return se
}

// Order returns the lag structure the estimate was computed for.
func (e *Estimate) Order() Order { return e.order }

// Start returns the first regression row's sample index.
func (e *Estimate) Start() int { return e.start }

// Rows returns the number of regression rows.
func (e *Estimate) Rows() int { return e.rows }

// NumParams returns the number of estimated parameters, including the bias.
func (e *Estimate) NumParams() int { return e.cols }

// Rank returns the numerical rank of the regressor matrix.
func (e *Estimate) Rank() int { return e.rank }

// FullRank reports whether every parameter is identifiable.
func (e *Estimate) FullRank() bool { return e.rank == e.cols }

// CheckRank returns an error wrapping ErrSingularSystem when the regression
// was rank deficient.
func (e *Estimate) CheckRank() error {
	if e.FullRank() {
		return nil
	}
	return fmt.Errorf("%w: rank %d of %d columns", ErrSingularSystem, e.rank, e.cols)
}

// SingularValues returns a copy of the singular values in descending order.
func (e *Estimate) SingularValues() []float64 {
	return append([]float64(nil), e.singular...)
}

// Cond returns the 2-norm condition number of the regressor matrix. It is
// +Inf when there are fewer rows than parameters or a singular value is zero.
func (e *Estimate) Cond() float64 {
	if len(e.singular) < e.cols {
		return math.Inf(1)
	}
	smallest := e.singular[len(e.singular)-1]
	if smallest == 0 {
		return math.Inf(1)
	}
	return e.singular[0] / smallest
}

// Gain returns the steady-state gain of the estimated coefficients.
func (e *Estimate) Gain() (float64, error) {
	return e.Coefficients.Gain()
}

// Residuals returns a copy of the regression residuals, one per row.
func (e *Estimate) Residuals() []float64 {
	return append([]float64(nil), e.residuals...)
}

// RSS returns the residual sum of squares.
func (e *Estimate) RSS() float64 { return e.rss }

// DOF returns the residual degrees of freedom, rows - params.
func (e *Estimate) DOF() int { return e.rows - e.cols }

// Variance returns the unbiased residual variance, or NaN without residual
// degrees of freedom.
func (e *Estimate) Variance() float64 {
	dof := e.DOF()
	if dof <= 0 {
		return math.NaN()
	}
	return e.rss / float64(dof)
}

// StdErrors returns the standard error of every parameter in the order of
// Coefficients.Vector.
func (e *Estimate) StdErrors() []float64 {
	return append([]float64(nil), e.stdErrors...)
}

// TStats returns parameter / standard error.
func (e *Estimate) TStats() []float64 {
	theta := e.Coefficients.Vector()
	t := make([]float64, len(theta))
	for i, v := range theta {
		t[i] = v / e.stdErrors[i]
	}
	return t
}

// PValues returns two-sided p-values of the t statistics under a Student's t
// distribution with DOF degrees of freedom.
func (e *Estimate) PValues() []float64 {
	tstats := e.TStats()
	p := make([]float64, len(tstats))
	dof := e.DOF()
	if dof <= 0 {
		for i := range p {
			p[i] = math.NaN()
		}
		return p
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	for i, t := range tstats {
		if math.IsNaN(t) {
			p[i] = math.NaN()
			continue
		}
		p[i] = 2 * dist.Survival(math.Abs(t))
	}
	return p
}
