package arx

import (
	"math"
	"strings"
	"testing"

	"github.com/sartorproj/goarx/stats"
	"github.com/sartorproj/goarx/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewARX(t *testing.T) {
	model := New(2, 2, 1)

	assert.Equal(t, Order{NA: 2, NB: 2, NK: 1}, model.Order)
	assert.Equal(t, ShiftNone, model.Shift)
	assert.Nil(t, model.Estimate())
	assert.Nil(t, model.Residuals())
	assert.Nil(t, model.Summary())

	_, err := model.Predict(mustDataset(t, excitation(10), excitation(10)), ModeStep)
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = model.Gain()
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = model.Coefficients()
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestModelFitStepScenario(t *testing.T) {
	u, y := stepScenario()
	d := mustDataset(t, u, y)
	logger, _ := nullLogger()

	model := New(2, 2, 1, WithLogger(logger))
	require.NoError(t, model.Fit(d))

	c, err := model.Coefficients()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5, -0.7, 0.5, 0.1}, c.Vector(), 1e-6)

	gain, err := model.Gain()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, gain, 1e-6)

	fitted := model.FittedValues()
	require.Len(t, fitted, len(y))
	for k := 0; k < 3; k++ {
		assert.True(t, math.IsNaN(fitted[k]))
	}
	assert.InDeltaSlice(t, y[3:], fitted[3:], 1e-9)
	assert.Len(t, model.Residuals(), len(y)-3)

	step, err := model.Predict(d, ModeStep)
	require.NoError(t, err)
	assert.Less(t, stats.RMSE(y, step.Values()), 1e-6)
}

func TestModelFitInvalid(t *testing.T) {
	d := mustDataset(t, excitation(20), excitation(20))

	assert.ErrorIs(t, New(0, 1, 0).Fit(d), ErrInvalidOrder)
	assert.ErrorIs(t, New(1, 1, -1).Fit(d), ErrInvalidOrder)
	assert.ErrorIs(t, New(1, 1, 0, WithShift(Shift(9))).Fit(d), ErrInvalidShift)
	assert.ErrorIs(t, New(5, 20, 0).Fit(d), ErrInsufficientData)
}

func TestModelFitMalformedDataset(t *testing.T) {
	for _, shift := range []Shift{ShiftNone, ShiftInit, ShiftMean, ShiftCalc} {
		t.Run(shift.String(), func(t *testing.T) {
			m := New(1, 1, 0, WithShift(shift))
			assert.ErrorIs(t, m.Fit(&timeseries.Dataset{}), ErrInsufficientData)

			short := &timeseries.Dataset{U: []float64{1, 2}, Y: []float64{1, 2, 3, 4, 5}}
			assert.ErrorIs(t, m.Fit(short), timeseries.ErrLengthMismatch)
			assert.Nil(t, m.Estimate())
		})
	}
}

func TestModelFailedFitKeepsState(t *testing.T) {
	u, y := stepScenario()
	logger, _ := nullLogger()

	model := New(2, 2, 1, WithLogger(logger))
	require.NoError(t, model.Fit(mustDataset(t, u, y)))
	before, _ := model.Coefficients()

	err := model.Fit(mustDataset(t, u[:3], y[:3]))
	require.ErrorIs(t, err, ErrInsufficientData)

	after, err := model.Coefficients()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// A strict fit on rank-deficient data does not leave a fitted model.
	constant := make([]float64, 20)
	for k := range constant {
		constant[k] = 1
	}
	strict := New(1, 2, 0, WithStrictRank(), WithLogger(logger))
	err = strict.Fit(mustDataset(t, constant, generate([]float64{0.5}, []float64{1}, 0, 0, constant)))
	assert.ErrorIs(t, err, ErrSingularSystem)
	_, err = strict.Coefficients()
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestModelShiftCalc(t *testing.T) {
	u := excitation(120)
	y := generate([]float64{0.6}, []float64{0.4}, 2, 0, u)
	logger, _ := nullLogger()

	model := New(1, 1, 0, WithShift(ShiftCalc), WithLogger(logger))
	require.NoError(t, model.Fit(mustDataset(t, u, y)))

	c, err := model.Coefficients()
	require.NoError(t, err)
	assert.True(t, c.HasBias)
	assert.InDelta(t, 0.6, c.A[0], 1e-8)
	assert.InDelta(t, 0.4, c.B[0], 1e-8)
	assert.InDelta(t, 2.0, c.C, 1e-7)

	gain, err := model.Gain()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, gain, 1e-7)

	u0, y0 := model.Offsets()
	assert.Zero(t, u0)
	assert.Zero(t, y0)
}

func TestModelShiftInit(t *testing.T) {
	udev := excitation(150)
	ydev := generate([]float64{0.6}, []float64{0.4}, 0, 0, udev)
	u := make([]float64, len(udev))
	y := make([]float64, len(ydev))
	for k := range u {
		u[k] = 5 + udev[k]
		y[k] = 10 + ydev[k]
	}
	d := mustDataset(t, u, y)
	logger, _ := nullLogger()

	model := New(1, 1, 0, WithShift(ShiftInit), WithLogger(logger))
	require.NoError(t, model.Fit(d))

	u0, y0 := model.Offsets()
	assert.Equal(t, 5.0, u0)
	assert.Equal(t, 10.0, y0)

	c, err := model.Coefficients()
	require.NoError(t, err)
	assert.False(t, c.HasBias)
	assert.InDeltaSlice(t, []float64{0.6, 0.4}, c.Vector(), 1e-8)

	for _, mode := range []Mode{ModeStep, ModeSimulate} {
		p, err := model.Predict(d, mode)
		require.NoError(t, err)
		assert.InDeltaSlice(t, y[1:], p.DefinedValues(), 1e-7, "mode %v", mode)
	}
}

func TestModelShiftMean(t *testing.T) {
	udev := excitation(200)
	ydev := generate([]float64{0.6}, []float64{0.4}, 0, 0, udev)
	u := make([]float64, len(udev))
	y := make([]float64, len(ydev))
	for k := range u {
		u[k] = 5 + udev[k]
		y[k] = 10 + ydev[k]
	}
	d := mustDataset(t, u, y)
	logger, _ := nullLogger()

	model := New(1, 1, 0, WithShift(ShiftMean), WithLogger(logger))
	require.NoError(t, model.Fit(d))

	u0, y0 := model.Offsets()
	assert.InDelta(t, 5.0, u0, 0.2)
	assert.InDelta(t, 10.0, y0, 0.2)

	p, err := model.Predict(d, ModeStep)
	require.NoError(t, err)
	assert.Less(t, stats.RMSE(y, p.Values()), 0.5)
}

func TestModelPredictValidation(t *testing.T) {
	u := excitation(200)
	y := addNoise(generate([]float64{1.5, -0.7}, []float64{0.5, 0.1}, 0, 1, u), 0.001, 3)
	est, val := mustDataset(t, u, y).Split(0.6)
	logger, _ := nullLogger()

	model := New(2, 2, 1, WithLogger(logger))
	require.NoError(t, model.Fit(est))

	p, err := model.Predict(val, ModeSimulate)
	require.NoError(t, err)
	assert.Equal(t, val.Len(), p.Len())

	m := stats.Compare(val.Y, p.Values())
	assert.Greater(t, m.Fit, 90.0)
}

func TestModelSummary(t *testing.T) {
	u := excitation(250)
	y := addNoise(generate([]float64{1.5, -0.7}, []float64{0.5, 0.1}, 0, 1, u), 0.01, 5)
	logger, _ := nullLogger()

	model := New(2, 2, 1, WithLogger(logger))
	require.NoError(t, model.Fit(mustDataset(t, u, y)))

	s := model.Summary()
	require.NotNil(t, s)

	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, s.Names)
	assert.True(t, s.GainDefined)
	assert.InDelta(t, 3.0, s.Gain, 0.3)
	assert.True(t, s.FullRank)
	assert.Equal(t, 4, s.Rank)
	assert.Equal(t, 250, s.NObs)
	assert.Equal(t, 247, s.NRows)
	assert.Len(t, s.StdErrors, 4)
	assert.Len(t, s.PValues, 4)
	assert.Greater(t, s.OneStep.R2, 0.99)
	assert.Less(t, s.AIC, s.AICc)
	require.NotNil(t, s.LjungBox)
	require.NotNil(t, s.BoxPierce)
	assert.Equal(t, 6, s.BoxPierce.DOF)
	assert.Less(t, s.BoxPierce.Statistic, s.LjungBox.Statistic)
	assert.NotNil(t, s.DurbinWatson)

	text := s.String()
	assert.True(t, strings.Contains(text, "ARX(2,2,1)"))
	assert.True(t, strings.Contains(text, "gain"))
	assert.True(t, strings.Contains(text, "b2"))
	assert.True(t, strings.Contains(text, "box-pierce"))
}

func TestModelSummaryUnderfit(t *testing.T) {
	// A first-order model leaves the second pole in the residuals.
	u := excitation(250)
	y := generate([]float64{1.5, -0.7}, []float64{0.5, 0.1}, 0, 1, u)
	logger, _ := nullLogger()

	model := New(1, 1, 1, WithLogger(logger))
	require.NoError(t, model.Fit(mustDataset(t, u, y)))

	s := model.Summary()
	require.NotNil(t, s)
	require.NotNil(t, s.LjungBox)
	assert.False(t, s.LjungBox.White())
	assert.NotEmpty(t, s.ResidualLags)
	assert.Contains(t, s.String(), "residual autocorrelation at lags")
}
