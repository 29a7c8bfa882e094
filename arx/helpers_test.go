package arx

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sartorproj/goarx/timeseries"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// generate iterates y[k] = sum a*y[k-i] + sum b*u[k-nk-j] + c from zero
// initial conditions, treating out-of-range history as zero.
func generate(a, b []float64, c float64, nk int, u []float64) []float64 {
	y := make([]float64, len(u))
	for k := range y {
		v := c
		for i := 1; i <= len(a); i++ {
			if k-i >= 0 {
				v += a[i-1] * y[k-i]
			}
		}
		for j := 1; j <= len(b); j++ {
			if k-nk-j >= 0 {
				v += b[j-1] * u[k-nk-j]
			}
		}
		y[k] = v
	}
	return y
}

// stepScenario is the 50-sample step response of
// y[k] = 1.5y[k-1] - 0.7y[k-2] + 0.5u[k-2] + 0.1u[k-3].
func stepScenario() (u, y []float64) {
	u = make([]float64, 50)
	for k := 5; k < len(u); k++ {
		u[k] = 1
	}
	y = generate([]float64{1.5, -0.7}, []float64{0.5, 0.1}, 0, 1, u)
	return u, y
}

// excitation is a deterministic multi-sine that is zero at k=0.
func excitation(n int) []float64 {
	u := make([]float64, n)
	for k := range u {
		x := float64(k)
		u[k] = math.Sin(0.2*x) + 0.5*math.Sin(0.71*x) + 0.25*math.Sin(1.9*x)
	}
	return u
}

func addNoise(y []float64, sigma float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v + sigma*rng.NormFloat64()
	}
	return out
}

func mustDataset(t *testing.T, u, y []float64) *timeseries.Dataset {
	t.Helper()
	d, err := timeseries.NewDataset(nil, u, y)
	require.NoError(t, err)
	return d
}

func nullLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func hasWarning(hook *test.Hook) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			return true
		}
	}
	return false
}
