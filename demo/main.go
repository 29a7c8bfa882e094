// Package main demonstrates ARX identification and order search on
// simulated plants.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/sartorproj/goarx/arx"
	"github.com/sartorproj/goarx/autoarx"
	"github.com/sartorproj/goarx/internal/chart"
	"github.com/sartorproj/goarx/stats"
	"github.com/sartorproj/goarx/timeseries"
	"github.com/sirupsen/logrus"
)

// Plant defines a simulated system to identify
type Plant struct {
	Name        string    // Display name
	Description string    // Brief description
	A, B        []float64 // True coefficients
	NK          int       // True dead time
	U0, Y0      float64   // Operating point
	Noise       float64   // Std of the equation error
	Samples     int
	Shift       arx.Shift
	Input       func(k int) float64
}

// FitResult holds model results for JSON export
type FitResult struct {
	ModelName       string    `json:"model_name"`
	Order           string    `json:"order"`
	A               []float64 `json:"a"`
	B               []float64 `json:"b"`
	Gain            *float64  `json:"gain"` // nil when undefined
	AIC             float64   `json:"aic"`
	BIC             float64   `json:"bic"`
	StepRMSE        float64   `json:"step_rmse"`
	SimRMSE         float64   `json:"sim_rmse"`
	SimFit          float64   `json:"sim_fit"`
	Rank            int       `json:"rank"`
	Cond            float64   `json:"cond"`
	ModelsEvaluated int       `json:"models_evaluated,omitempty"`
}

// PlantResult holds analysis results for a plant
type PlantResult struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	TrueOrder   string      `json:"true_order"`
	NObs        int         `json:"n_obs"`
	Models      []FitResult `json:"models"`
	CCF         []float64   `json:"ccf"`
}

// OutputData holds all results for visualization
type OutputData struct {
	Plants []PlantResult `json:"plants"`
}

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("GoARX Demonstration - ARX identification and order search")
	fmt.Println(strings.Repeat("=", 80))

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	outDir := "demo_output"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	step := func(at int) func(int) float64 {
		return func(k int) float64 {
			if k >= at {
				return 1
			}
			return 0
		}
	}
	multisine := func(k int) float64 {
		x := float64(k)
		return math.Sin(0.15*x) + 0.5*math.Sin(0.63*x) + 0.3*math.Sin(1.7*x)
	}

	plants := []Plant{
		{Name: "Second-order step", Description: "Noise-free step response, u 0 to 1 at k=5",
			A: []float64{1.5, -0.7}, B: []float64{0.5, 0.1}, NK: 1, Samples: 50, Input: step(5)},
		{Name: "Heater", Description: "First order with two samples of dead time around 25 C",
			A: []float64{0.9}, B: []float64{0.25}, NK: 2, U0: 20, Y0: 25, Noise: 0.02, Samples: 400,
			Shift: arx.ShiftInit, Input: func(k int) float64 { return 10 * step(20)(k) * math.Copysign(1, math.Sin(0.05*float64(k))) }},
		{Name: "Resonant", Description: "Lightly damped second order, multi-sine input",
			A: []float64{1.6, -0.85}, B: []float64{0.2, 0.15}, NK: 0, Noise: 0.01, Samples: 300,
			Input: multisine},
		{Name: "Integrating tank", Description: "Level integrates inflow, gain undefined",
			A: []float64{1}, B: []float64{0.05}, NK: 1, Noise: 0.001, Samples: 300,
			Input: multisine},
	}

	output := OutputData{Plants: []PlantResult{}}

	for i, p := range plants {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(plants), p.Name, strings.Repeat("=", 80))

		result := analyze(p, outDir, logger)
		if result != nil {
			output.Plants = append(output.Plants, *result)
		}
	}

	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))

	if data, err := json.MarshalIndent(output, "", "  "); err == nil {
		path := filepath.Join(outDir, "arx_results.json")
		os.WriteFile(path, data, 0644)
		fmt.Printf("Exported %d plants to %s\n", len(output.Plants), path)
	}
	fmt.Println(strings.Repeat("=", 80))
}

// simulate runs the true plant around its operating point
func simulate(p Plant, seed uint64) *timeseries.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	udev := make([]float64, p.Samples)
	ydev := make([]float64, p.Samples)
	for k := range udev {
		udev[k] = p.Input(k)
	}
	start := max(len(p.A), len(p.B)+p.NK)
	for k := start; k < p.Samples; k++ {
		v := p.Noise * rng.NormFloat64()
		for i, a := range p.A {
			v += a * ydev[k-i-1]
		}
		for j, b := range p.B {
			v += b * udev[k-p.NK-j-1]
		}
		ydev[k] = v
	}

	u := make([]float64, p.Samples)
	y := make([]float64, p.Samples)
	for k := range u {
		u[k] = p.U0 + udev[k]
		y[k] = p.Y0 + ydev[k]
	}
	d, _ := timeseries.NewDataset(nil, u, y)
	d.Name = p.Name
	return d
}

// analyze fits the true order and an automatically selected one
func analyze(p Plant, outDir string, logger logrus.FieldLogger) *PlantResult {
	d := simulate(p, uint64(len(p.Name)))
	trueOrder := arx.Order{NA: len(p.A), NB: len(p.B), NK: p.NK}
	fmt.Printf("   %d samples, u in [%.2f, %.2f], y in [%.2f, %.2f]\n",
		d.Len(), d.Input().Min(), d.Input().Max(), d.Output().Min(), d.Output().Max())

	result := &PlantResult{
		Name:        p.Name,
		Description: p.Description,
		TrueOrder:   trueOrder.String(),
		NObs:        d.Len(),
		Models:      []FitResult{},
	}

	// Lag of the input/output cross-correlation peak hints at the dead time
	if ccf := stats.CCFWithConfidence(d.Input(), d.Output(), 10); ccf != nil {
		result.CCF = ccf.Values
	}

	model := arx.New(trueOrder.NA, trueOrder.NB, trueOrder.NK, arx.WithShift(p.Shift), arx.WithLogger(logger))
	if err := model.Fit(d); err != nil {
		fmt.Printf("   Fit failed: %v\n", err)
		return nil
	}
	fr := describe("ARX", model)
	printFit(fr)
	result.Models = append(result.Models, fr)

	if sim, err := model.Predict(d, arx.ModeSimulate); err == nil {
		path := filepath.Join(outDir, strings.ReplaceAll(strings.ToLower(p.Name), " ", "_")+".png")
		opts := chart.DefaultOptions()
		opts.Title = fmt.Sprintf("%s %v", p.Name, trueOrder)
		if err := chart.Save(path, d, sim, opts); err != nil {
			fmt.Printf("   Chart failed: %v\n", err)
		}
	}

	// Order search needs the largest candidate's lag history
	if d.Len() > 60 {
		cfg := autoarx.DefaultConfig()
		cfg.Criterion = autoarx.CriterionBIC
		cfg.Shift = p.Shift
		cfg.Logger = logger
		if auto, err := autoarx.Search(context.Background(), d, cfg); err == nil {
			fr := describe("Auto-ARX", auto.Model)
			fr.ModelsEvaluated = auto.ModelsEvaluated
			printFit(fr)
			result.Models = append(result.Models, fr)
		}
	}

	return result
}

func describe(name string, m *arx.Model) FitResult {
	c, _ := m.Coefficients()
	s := m.Summary()
	fr := FitResult{
		ModelName: name,
		Order:     m.Order.String(),
		A:         c.A,
		B:         c.B,
		AIC:       finite(s.AIC),
		BIC:       finite(s.BIC),
		StepRMSE:  finite(s.OneStep.RMSE),
		SimRMSE:   finite(s.Simulation.RMSE),
		SimFit:    finite(s.Simulation.Fit),
		Rank:      s.Rank,
		Cond:      finite(s.Cond),
	}
	if s.GainDefined {
		g := s.Gain
		fr.Gain = &g
	}
	return fr
}

func printFit(fr FitResult) {
	gain := "undefined"
	if fr.Gain != nil {
		gain = fmt.Sprintf("%.4f", *fr.Gain)
	}
	fmt.Printf("   %s%s: a=%.4f b=%.4f K=%s\n", fr.ModelName, strings.TrimPrefix(fr.Order, "ARX"), fr.A, fr.B, gain)
	fmt.Printf("      step RMSE=%.4g, sim RMSE=%.4g (fit %.1f%%), cond=%.3g",
		fr.StepRMSE, fr.SimRMSE, fr.SimFit, fr.Cond)
	if fr.ModelsEvaluated > 0 {
		fmt.Printf(", %d models", fr.ModelsEvaluated)
	}
	fmt.Println()
}

// finite maps NaN and infinities to 0, which JSON cannot encode
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
