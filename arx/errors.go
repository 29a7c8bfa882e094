package arx

import "errors"

var (
	// ErrInsufficientData is returned when the dataset is too short for the
	// lag structure: at least MaxLag()+1 samples are needed.
	ErrInsufficientData = errors.New("arx: insufficient data for the lag structure")

	// ErrSingularSystem reports a rank-deficient regression. The estimator
	// still returns the minimum-norm solution unless strict rank checking
	// was requested.
	ErrSingularSystem = errors.New("arx: regression matrix is rank deficient")

	// ErrUnstableGain is returned when 1 - sum(a) is numerically zero and the
	// steady-state gain is undefined.
	ErrUnstableGain = errors.New("arx: steady-state gain undefined")

	// ErrDimensionMismatch is returned when a coefficient vector does not
	// match the lag structure.
	ErrDimensionMismatch = errors.New("arx: coefficient dimensions do not match the order")

	// ErrInvalidOrder is returned for na < 1, nb < 1 or nk < 0.
	ErrInvalidOrder = errors.New("arx: invalid model order")

	// ErrInvalidMode is returned for an unknown prediction mode.
	ErrInvalidMode = errors.New("arx: invalid prediction mode")

	// ErrInvalidShift is returned for an unknown shift mode.
	ErrInvalidShift = errors.New("arx: invalid shift mode")

	// ErrNotFitted is returned when a model is used before Fit.
	ErrNotFitted = errors.New("arx: model must be fitted before use")
)
