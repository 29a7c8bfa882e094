package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sartorproj/goarx/autoarx"
	"github.com/sartorproj/goarx/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	maxNA, maxNB, maxNK int
	criterion           string
	workers             int
	top                 int
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Select the ARX order by information criterion",
		Long: `Fit every order up to the given maxima on the same regression rows and
rank them by criterion (aic, aicc, bic, fpe or sim).

Example: arxid search --data data.csv --max-na 4 --max-nb 4 --max-nk 3 --criterion bic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, g)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("max-na") {
				cfg.Search.MaxNA = f.maxNA
			}
			if flags.Changed("max-nb") {
				cfg.Search.MaxNB = f.maxNB
			}
			if flags.Changed("max-nk") {
				cfg.Search.MaxNK = f.maxNK
			}
			if flags.Changed("criterion") {
				cfg.Search.Criterion = f.criterion
			}
			if flags.Changed("workers") {
				cfg.Search.Workers = f.workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cfg, f.top, logger)
		},
	}

	cmd.Flags().IntVar(&f.maxNA, "max-na", 4, "Maximum number of output lags")
	cmd.Flags().IntVar(&f.maxNB, "max-nb", 4, "Maximum number of input lags")
	cmd.Flags().IntVar(&f.maxNK, "max-nk", 3, "Maximum dead time")
	cmd.Flags().StringVar(&f.criterion, "criterion", "aic", "Selection criterion: aic|aicc|bic|fpe|sim")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concurrent fits (0: number of CPUs)")
	cmd.Flags().IntVar(&f.top, "top", 10, "Number of candidates to list")
	return cmd
}

func runSearch(ctx context.Context, w io.Writer, cfg *config.Config, top int, logger *logrus.Logger) error {
	d, err := loadData(cfg, logger)
	if err != nil {
		return err
	}

	sc := cfg.SearchConfig()
	sc.Logger = logger
	result, err := autoarx.Search(ctx, d, sc)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Best model: %v (%s=%.4f, %d models evaluated, rows from %d)\n",
		result.Order, sc.Criterion, result.Criterion, result.ModelsEvaluated, result.Start)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "order\tscore\tAIC\tBIC\tFPE\tsim RMSE\trank")
	for i, c := range result.Candidates {
		if i >= top {
			break
		}
		if c.Err != nil {
			fmt.Fprintf(tw, "%v\tfailed: %v\n", c.Order, c.Err)
			continue
		}
		fmt.Fprintf(tw, "%v\t%.4f\t%.4f\t%.4f\t%.4g\t%.4g\t%d\n",
			c.Order, c.Score, c.AIC, c.BIC, c.FPE, c.SimRMSE, c.Rank)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if result.Model != nil {
		fmt.Fprintln(w)
		fmt.Fprint(w, result.Model.Summary())
	}
	return nil
}
