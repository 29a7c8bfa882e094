package autoarx

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"

	"github.com/sartorproj/goarx/arx"
	"github.com/sartorproj/goarx/stats"
	"github.com/sartorproj/goarx/timeseries"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidCriterion is returned for an unknown selection criterion.
var ErrInvalidCriterion = errors.New("autoarx: invalid criterion")

// Selection criteria.
const (
	CriterionAIC  = "aic"
	CriterionAICc = "aicc"
	CriterionBIC  = "bic"
	CriterionFPE  = "fpe"
	CriterionSim  = "sim" // RMSE of the free-run simulation
)

// Config holds configuration for the order search.
type Config struct {
	MinNA, MaxNA int       // Output lag range (default: 1..4)
	MinNB, MaxNB int       // Input lag range (default: 1..4)
	MinNK, MaxNK int       // Dead time range (default: 0..3)
	Criterion    string    // "aic", "aicc", "bic", "fpe" or "sim" (default: "aic")
	Shift        arx.Shift // Offset handling applied to every candidate
	Mode         arx.Mode  // Prediction mode of Result.Predict (default: simulate)
	Workers      int       // Concurrent fits (default: GOMAXPROCS)
	Logger       logrus.FieldLogger
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() *Config {
	return &Config{
		MinNA:     1,
		MaxNA:     4,
		MinNB:     1,
		MaxNB:     4,
		MinNK:     0,
		MaxNK:     3,
		Criterion: CriterionAIC,
		Shift:     arx.ShiftNone,
		Mode:      arx.ModeSimulate,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Validate checks the search ranges and the criterion.
func (c *Config) Validate() error {
	if c.MinNA < 1 || c.MinNB < 1 || c.MinNK < 0 {
		return fmt.Errorf("%w: minimum order (%d,%d,%d)", arx.ErrInvalidOrder, c.MinNA, c.MinNB, c.MinNK)
	}
	if c.MaxNA < c.MinNA || c.MaxNB < c.MinNB || c.MaxNK < c.MinNK {
		return fmt.Errorf("%w: empty search range", arx.ErrInvalidOrder)
	}
	if err := (arx.Order{NA: c.MaxNA, NB: c.MaxNB, NK: c.MaxNK}).Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Criterion) {
	case CriterionAIC, CriterionAICc, CriterionBIC, CriterionFPE, CriterionSim:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCriterion, c.Criterion)
	}
	return nil
}

// Start returns the first regression row shared by every candidate.
func (c *Config) Start() int {
	return max(c.MaxNA, c.MaxNB+c.MaxNK)
}

// Candidate is one evaluated order.
type Candidate struct {
	Order    arx.Order
	Score    float64 // Value of the selection criterion, lower is better
	AIC      float64
	AICc     float64
	BIC      float64
	FPE      float64
	SimRMSE  float64
	Rank     int
	FullRank bool
	Err      error // Non-nil when the fit failed

	model *arx.Model
}

// Result represents the outcome of the order search.
type Result struct {
	Model     *arx.Model
	Order     arx.Order
	Criterion float64
	Start     int
	Mode      arx.Mode

	// All candidates, best first.
	Candidates      []Candidate
	ModelsEvaluated int
}

// Search fits every order in the configured grid and selects the one with
// the lowest criterion. Candidates are fitted concurrently and scored on the
// same regression rows, so their criteria are comparable.
func Search(ctx context.Context, d *timeseries.Dataset, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := cfg.Start()
	if d.Len() <= start {
		return nil, fmt.Errorf("%w: search needs at least %d samples, got %d",
			arx.ErrInsufficientData, start+1, d.Len())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	criterion := strings.ToLower(cfg.Criterion)

	var orders []arx.Order
	for na := cfg.MinNA; na <= cfg.MaxNA; na++ {
		for nb := cfg.MinNB; nb <= cfg.MaxNB; nb++ {
			for nk := cfg.MinNK; nk <= cfg.MaxNK; nk++ {
				orders = append(orders, arx.Order{NA: na, NB: nb, NK: nk})
			}
		}
	}

	candidates := make([]Candidate, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, order := range orders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[i] = evaluate(d, order, start, criterion, cfg.Shift, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(candidates, compareCandidates)

	evaluated := 0
	for _, c := range candidates {
		if c.Err == nil {
			evaluated++
		}
	}
	best := candidates[0]
	if best.Err != nil {
		return nil, fmt.Errorf("autoarx: no candidate could be fitted: %w", best.Err)
	}

	logger.WithFields(logrus.Fields{
		"order":     best.Order.String(),
		"criterion": criterion,
		"score":     best.Score,
		"evaluated": evaluated,
	}).Info("order search finished")

	return &Result{
		Model:           best.model,
		Order:           best.Order,
		Criterion:       best.Score,
		Start:           start,
		Mode:            cfg.Mode,
		Candidates:      candidates,
		ModelsEvaluated: evaluated,
	}, nil
}

func evaluate(d *timeseries.Dataset, order arx.Order, start int, criterion string, shift arx.Shift, logger logrus.FieldLogger) Candidate {
	c := Candidate{Order: order, Score: math.Inf(1)}
	log := logger.WithFields(logrus.Fields{"na": order.NA, "nb": order.NB, "nk": order.NK})

	m := arx.New(order.NA, order.NB, order.NK,
		arx.WithShift(shift),
		arx.WithStart(start),
		arx.WithLogger(log),
	)
	if err := m.Fit(d); err != nil {
		c.Err = err
		log.WithError(err).Debug("candidate failed")
		return c
	}

	est := m.Estimate()
	ic := stats.CalculateIC(est.RSS(), est.Rows(), est.NumParams())
	c.AIC, c.AICc, c.BIC, c.FPE = ic.AIC, ic.AICc, ic.BIC, ic.FPE
	c.Rank, c.FullRank = est.Rank(), est.FullRank()
	c.SimRMSE = math.Inf(1)
	if sim, err := m.Predict(d, arx.ModeSimulate); err == nil {
		c.SimRMSE = stats.RMSE(d.Y[start:], sim.Values()[start:])
	}
	c.model = m

	switch criterion {
	case CriterionAICc:
		c.Score = c.AICc
	case CriterionBIC:
		c.Score = c.BIC
	case CriterionFPE:
		c.Score = c.FPE
	case CriterionSim:
		c.Score = c.SimRMSE
	default:
		c.Score = c.AIC
	}
	if math.IsNaN(c.Score) {
		c.Score = math.Inf(1)
	}

	log.WithField("score", c.Score).Debug("candidate evaluated")
	return c
}

// compareCandidates orders by score, then fewer parameters, then na, nb, nk.
// Failed candidates sort last.
func compareCandidates(a, b Candidate) int {
	if (a.Err == nil) != (b.Err == nil) {
		if a.Err == nil {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(a.Score, b.Score),
		cmp.Compare(a.Order.NumParams(), b.Order.NumParams()),
		cmp.Compare(a.Order.NA, b.Order.NA),
		cmp.Compare(a.Order.NB, b.Order.NB),
		cmp.Compare(a.Order.NK, b.Order.NK),
	)
}

// Predict evaluates the selected model on d in the configured mode.
func (r *Result) Predict(d *timeseries.Dataset) (*arx.Prediction, error) {
	if r.Model == nil {
		return nil, arx.ErrNotFitted
	}
	return r.Model.Predict(d, r.Mode)
}

// Residuals returns the selected model's residuals.
func (r *Result) Residuals() []float64 {
	if r.Model == nil {
		return nil
	}
	return r.Model.Residuals()
}
