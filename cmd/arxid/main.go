// Command arxid identifies ARX models from CSV input/output data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sartorproj/goarx/internal/config"
	"github.com/sartorproj/goarx/timeseries"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	dataPath   string
	logLevel   string
	logFormat  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:           "arxid",
		Short:         "ARX system identification from input/output data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&g.dataPath, "data", "", "CSV file with t, u, y columns")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format: text|json")

	rootCmd.AddCommand(
		newFitCmd(&g),
		newSearchCmd(&g),
	)
	return rootCmd
}

// setup loads the configuration, applies the global flags and configures a
// logger writing to the command's error stream.
func setup(cmd *cobra.Command, g *globalFlags) (*config.Config, *logrus.Logger, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return nil, nil, err
		}
	}
	if g.dataPath != "" {
		cfg.Data.Path = g.dataPath
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if err := cfg.ConfigureLogger(logger); err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadData(cfg *config.Config, logger logrus.FieldLogger) (*timeseries.Dataset, error) {
	if cfg.Data.Path == "" {
		return nil, fmt.Errorf("no data file: use --data or data.path in the config")
	}
	d, err := timeseries.LoadCSV(cfg.Data.Path, cfg.CSVOptions())
	if err != nil {
		return nil, err
	}
	fields := logrus.Fields{"path": cfg.Data.Path, "samples": d.Len()}
	if ts, uniform := d.SampleTime(); uniform {
		fields["ts"] = ts
	} else {
		logger.WithFields(fields).Warn("non-uniform sampling, lags are counted in samples")
	}
	logger.WithFields(fields).Info("loaded data")
	return d, nil
}
