package arx

import (
	"io"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultRankTolerance is the singular value cut-off, relative to the
	// largest singular value, below which a direction counts as null.
	DefaultRankTolerance = 1e-12

	// GainTolerance is the bound on |1 - sum(a)| under which the
	// steady-state gain is undefined.
	GainTolerance = 1e-8
)

type settings struct {
	shift      Shift
	start      int // 0 means MaxLag()
	rankTol    float64
	strictRank bool
	logger     logrus.FieldLogger
}

func newSettings(opts []Option) settings {
	s := settings{
		rankTol: DefaultRankTolerance,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures identification.
type Option func(*settings)

// WithShift sets the offset handling. ShiftCalc adds a bias column to the
// regressor matrix.
func WithShift(shift Shift) Option {
	return func(s *settings) {
		s.shift = shift
	}
}

// WithStart sets the first regression row. It must not be smaller than the
// order's MaxLag. Fitting several orders with the same start scores them on
// the same rows.
func WithStart(start int) Option {
	return func(s *settings) {
		s.start = start
	}
}

// WithRankTolerance overrides DefaultRankTolerance.
func WithRankTolerance(tol float64) Option {
	return func(s *settings) {
		s.rankTol = tol
	}
}

// WithStrictRank makes estimation fail with ErrSingularSystem instead of
// returning the minimum-norm solution of a rank-deficient regression.
func WithStrictRank() Option {
	return func(s *settings) {
		s.strictRank = true
	}
}

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		if logger == nil {
			l := logrus.New()
			l.SetOutput(io.Discard)
			logger = l
		}
		s.logger = logger
	}
}
