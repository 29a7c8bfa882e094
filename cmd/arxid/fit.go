package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sartorproj/goarx/arx"
	"github.com/sartorproj/goarx/internal/chart"
	"github.com/sartorproj/goarx/internal/config"
	"github.com/sartorproj/goarx/stats"
	"github.com/sartorproj/goarx/timeseries"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type fitFlags struct {
	na, nb, nk int
	mode       string
	shift      string
	plot       string
	out        string
	summary    bool
}

func newFitCmd(g *globalFlags) *cobra.Command {
	var f fitFlags

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit an ARX model and report coefficients, gain and RMSE",
		Long: `Fit an ARX(na, nb, nk) model by least squares and predict the output
on the same data.

Example: arxid fit --data data.csv --na 2 --nb 2 --nk 1 --mode simulate --plot fit.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, g)
			if err != nil {
				return err
			}
			if err := applyFitFlags(cmd, &f, cfg); err != nil {
				return err
			}
			return runFit(cmd.OutOrStdout(), cfg, f.summary, logger)
		},
	}

	cmd.Flags().IntVar(&f.na, "na", 2, "Number of output lags")
	cmd.Flags().IntVar(&f.nb, "nb", 2, "Number of input lags")
	cmd.Flags().IntVar(&f.nk, "nk", 1, "Dead time in samples")
	cmd.Flags().StringVar(&f.mode, "mode", "simulate", "Prediction mode: step|simulate")
	cmd.Flags().StringVar(&f.shift, "shift", "none", "Offset handling: none|init|mean|calc")
	cmd.Flags().StringVar(&f.plot, "plot", "", "Write a chart (format from extension: png, svg, pdf)")
	cmd.Flags().StringVar(&f.out, "out", "", "Write t,u,y,y_pred to a CSV file")
	cmd.Flags().BoolVar(&f.summary, "summary", true, "Print the model summary")
	return cmd
}

// applyFitFlags overrides config values with flags set on the command line.
func applyFitFlags(cmd *cobra.Command, f *fitFlags, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("na") {
		cfg.Model.NA = f.na
	}
	if flags.Changed("nb") {
		cfg.Model.NB = f.nb
	}
	if flags.Changed("nk") {
		cfg.Model.NK = f.nk
	}
	if flags.Changed("mode") {
		mode, err := arx.ParseMode(f.mode)
		if err != nil {
			return err
		}
		cfg.Model.Mode = mode
	}
	if flags.Changed("shift") {
		shift, err := arx.ParseShift(f.shift)
		if err != nil {
			return err
		}
		cfg.Model.Shift = shift
	}
	if flags.Changed("plot") {
		cfg.Output.Plot = f.plot
	}
	if flags.Changed("out") {
		cfg.Output.Predictions = f.out
	}
	return cfg.Validate()
}

func runFit(w io.Writer, cfg *config.Config, summary bool, logger *logrus.Logger) error {
	d, err := loadData(cfg, logger)
	if err != nil {
		return err
	}

	order := cfg.Order()
	res, err := arx.Identify(d.T, d.U, d.Y, order.NA, order.NB, order.NK, cfg.Model.Mode,
		cfg.ModelOptions(logger)...)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%v mode=%v shift=%v\n", order, cfg.Model.Mode, cfg.Model.Shift)
	fmt.Fprintf(w, "a: %v\n", res.Coefficients.A)
	fmt.Fprintf(w, "b: %v\n", res.Coefficients.B)
	if res.Coefficients.HasBias {
		fmt.Fprintf(w, "c: %v\n", res.Coefficients.C)
	}
	if res.GainDefined {
		fmt.Fprintf(w, "K: %v\n", res.Gain)
	} else {
		fmt.Fprintf(w, "K: undefined (%v)\n", res.GainErr)
	}
	fmt.Fprintf(w, "Root-mean-squared-error: %.3f\n", stats.RMSE(d.Y, res.Prediction.Values()))
	if err := res.Estimate.CheckRank(); err != nil {
		logger.WithError(err).Warn("coefficients are not uniquely determined")
	}
	if summary {
		fmt.Fprintln(w)
		fmt.Fprint(w, res.Model.Summary())
	}

	return writeOutputs(cfg, d, res.Prediction, logger)
}

func writeOutputs(cfg *config.Config, d *timeseries.Dataset, pred *arx.Prediction, logger logrus.FieldLogger) error {
	if path := cfg.Output.Predictions; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := timeseries.SavePredictionsCSV(f, d, pred); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.WithField("path", path).Info("wrote predictions")
	}
	if path := cfg.Output.Plot; path != "" {
		opts := chart.DefaultOptions()
		opts.Title = fmt.Sprintf("%v, %v", cfg.Order(), pred.Mode)
		if err := chart.Save(path, d, pred, opts); err != nil {
			return err
		}
		logger.WithField("path", path).Info("wrote chart")
	}
	return nil
}
