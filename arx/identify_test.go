package arx

import (
	"math"
	"testing"

	"github.com/sartorproj/goarx/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyStepScenario(t *testing.T) {
	u, y := stepScenario()
	tm := make([]float64, len(u))
	for k := range tm {
		tm[k] = 0.5 * float64(k)
	}
	logger, _ := nullLogger()

	for _, mode := range []Mode{ModeStep, ModeSimulate} {
		t.Run(mode.String(), func(t *testing.T) {
			res, err := Identify(tm, u, y, 2, 2, 1, mode, WithLogger(logger))
			require.NoError(t, err)

			assert.InDeltaSlice(t, []float64{1.5, -0.7}, res.Coefficients.A, 1e-6)
			assert.InDeltaSlice(t, []float64{0.5, 0.1}, res.Coefficients.B, 1e-6)
			assert.True(t, res.GainDefined)
			assert.NoError(t, res.GainErr)
			assert.InDelta(t, 3.0, res.Gain, 1e-6)

			assert.Equal(t, mode, res.Prediction.Mode)
			assert.Equal(t, 3, res.Prediction.Start)
			assert.Less(t, stats.RMSE(y, res.Prediction.Values()), 1e-6)
			assert.True(t, res.Estimate.FullRank())
			assert.NotNil(t, res.Model)
		})
	}
}

func TestIdentifyBoundaries(t *testing.T) {
	u, y := stepScenario()
	logger, _ := nullLogger()

	res, err := Identify(nil, u[:4], y[:4], 2, 2, 1, ModeStep, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Estimate.Rows())
	assert.Len(t, res.Prediction.DefinedValues(), 1)

	_, err = Identify(nil, u[:3], y[:3], 2, 2, 1, ModeStep, WithLogger(logger))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestIdentifyUndefinedGain(t *testing.T) {
	u := excitation(60)
	y := generate([]float64{1}, []float64{0.5}, 0, 0, u)
	logger, _ := nullLogger()

	res, err := Identify(nil, u, y, 1, 1, 0, ModeSimulate, WithLogger(logger))
	require.NoError(t, err)

	assert.False(t, res.GainDefined)
	assert.ErrorIs(t, res.GainErr, ErrUnstableGain)
	assert.InDelta(t, 1.0, res.Coefficients.A[0], 1e-9)
	assert.InDelta(t, 0.5, res.Coefficients.B[0], 1e-9)
}

func TestIdentifyInvalidInput(t *testing.T) {
	logger, _ := nullLogger()

	_, err := Identify(nil, []float64{1, 2, 3}, []float64{1, 2}, 1, 1, 0, ModeStep, WithLogger(logger))
	assert.Error(t, err)

	_, err = Identify(nil, excitation(10), excitation(10), 0, 1, 0, ModeStep, WithLogger(logger))
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = Identify(nil, excitation(10), excitation(10), 1, 1, 0, Mode(3), WithLogger(logger))
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = Identify(nil, []float64{1, 2, 3}, []float64{1, 2, 3}, 1, 1, math.MaxInt, ModeStep, WithLogger(logger))
	assert.ErrorIs(t, err, ErrInvalidOrder)
}
