package arx

import (
	"fmt"
	"strings"

	"github.com/sartorproj/goarx/stats"
	"github.com/sartorproj/goarx/timeseries"
)

// Summary holds the coefficients and diagnostics of a fitted model.
type Summary struct {
	Order        Order
	Shift        Shift
	Coefficients Coefficients
	Names        []string // a1.., b1.., c
	Gain         float64
	GainDefined  bool
	Rank         int
	FullRank     bool
	Cond         float64
	NObs         int // Samples in the estimation data
	NRows        int // Regression rows
	Variance     float64
	LogLik       float64
	AIC          float64
	AICc         float64 // Corrected AIC
	BIC          float64
	FPE          float64
	StdErrors    []float64
	TStats       []float64
	PValues      []float64
	OneStep      stats.ErrorMetrics
	Simulation   stats.ErrorMetrics
	LjungBox     *stats.PortmanteauResult
	BoxPierce    *stats.PortmanteauResult
	DurbinWatson *stats.DurbinWatsonResult
	// Lags at which residuals are still autocorrelated.
	ResidualLags []int
	// Lags at which residuals still correlate with the input.
	InputLags []int
}

const summaryLags = 10

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}
	e := m.est

	ic := stats.CalculateIC(e.rss, e.rows, e.cols)
	residSeries := timeseries.New(e.residuals)

	s := &Summary{
		Order:        m.Order,
		Shift:        m.Shift,
		Coefficients: e.Coefficients.Clone(),
		Names:        paramNames(m.Order, e.Coefficients.HasBias),
		Rank:         e.rank,
		FullRank:     e.FullRank(),
		Cond:         e.Cond(),
		NObs:         m.data.Len(),
		NRows:        e.rows,
		Variance:     e.Variance(),
		LogLik:       ic.LogLik,
		AIC:          ic.AIC,
		AICc:         ic.AICc,
		BIC:          ic.BIC,
		FPE:          ic.FPE,
		StdErrors:    e.StdErrors(),
		TStats:       e.TStats(),
		PValues:      e.PValues(),
		OneStep:      stats.Compare(m.data.Y, m.fittedVals),
		LjungBox:     stats.LjungBox(residSeries, summaryLags, m.Order.NumParams()),
		BoxPierce:    stats.BoxPierce(residSeries, summaryLags, m.Order.NumParams()),
		DurbinWatson: stats.DurbinWatson(e.residuals),
	}
	if g, err := e.Gain(); err == nil {
		s.Gain, s.GainDefined = g, true
	}
	if sim, err := m.Predict(m.data, ModeSimulate); err == nil {
		s.Simulation = stats.Compare(m.data.Y, sim.Values())
	}

	if acf := stats.ACFWithConfidence(residSeries, summaryLags); acf != nil {
		s.ResidualLags = acf.Significant()
	}
	input := timeseries.New(m.data.U[e.start:])
	if ccf := stats.CCFWithConfidence(input, residSeries, summaryLags); ccf != nil {
		s.InputLags = ccf.Significant()
	}
	return s
}

func paramNames(order Order, bias bool) []string {
	names := make([]string, 0, order.NumParams()+1)
	for i := 1; i <= order.NA; i++ {
		names = append(names, fmt.Sprintf("a%d", i))
	}
	for j := 1; j <= order.NB; j++ {
		names = append(names, fmt.Sprintf("b%d", j))
	}
	if bias {
		names = append(names, "c")
	}
	return names
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v shift=%v samples=%d rows=%d\n", s.Order, s.Shift, s.NObs, s.NRows)
	fmt.Fprintf(&b, "%-6s %12s %12s %9s %9s\n", "param", "value", "std.err", "t", "p")
	for i, v := range s.Coefficients.Vector() {
		fmt.Fprintf(&b, "%-6s %12.6g %12.4g %9.3f %9.4f\n",
			s.Names[i], v, s.StdErrors[i], s.TStats[i], s.PValues[i])
	}
	if s.GainDefined {
		fmt.Fprintf(&b, "gain      %.6g\n", s.Gain)
	} else {
		b.WriteString("gain      undefined\n")
	}
	fmt.Fprintf(&b, "rank      %d/%d cond=%.4g\n", s.Rank, len(s.Names), s.Cond)
	fmt.Fprintf(&b, "variance  %.6g\n", s.Variance)
	fmt.Fprintf(&b, "loglik    %.4f AIC=%.4f AICc=%.4f BIC=%.4f FPE=%.4g\n", s.LogLik, s.AIC, s.AICc, s.BIC, s.FPE)
	fmt.Fprintf(&b, "one-step  RMSE=%.4g fit=%.2f%%\n", s.OneStep.RMSE, s.OneStep.Fit)
	fmt.Fprintf(&b, "simulate  RMSE=%.4g fit=%.2f%%\n", s.Simulation.RMSE, s.Simulation.Fit)
	if s.LjungBox != nil {
		fmt.Fprintf(&b, "ljung-box Q=%.4f p=%.4f white=%t\n", s.LjungBox.Statistic, s.LjungBox.PValue, s.LjungBox.White())
	}
	if s.BoxPierce != nil {
		fmt.Fprintf(&b, "box-pierce Q=%.4f p=%.4f\n", s.BoxPierce.Statistic, s.BoxPierce.PValue)
	}
	if s.DurbinWatson != nil {
		fmt.Fprintf(&b, "durbin-watson %.4f\n", s.DurbinWatson.Statistic)
	}
	if len(s.ResidualLags) > 0 {
		fmt.Fprintf(&b, "residual autocorrelation at lags %v\n", s.ResidualLags)
	}
	if len(s.InputLags) > 0 {
		fmt.Fprintf(&b, "residual/input correlation at lags %v\n", s.InputLags)
	}
	return b.String()
}
