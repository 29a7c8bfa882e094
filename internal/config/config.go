// Package config loads the arxid YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sartorproj/goarx/arx"
	"github.com/sartorproj/goarx/autoarx"
	"github.com/sartorproj/goarx/timeseries"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration file.
type Config struct {
	Data   Data   `yaml:"data"`
	Model  Model  `yaml:"model"`
	Search Search `yaml:"search"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
}

// Data selects the CSV file and its columns.
type Data struct {
	Path         string `yaml:"path"`
	TimeColumn   string `yaml:"time_column"`
	InputColumn  string `yaml:"input_column"`
	OutputColumn string `yaml:"output_column"`
	Delimiter    string `yaml:"delimiter"`
	SkipRows     int    `yaml:"skip_rows"`
}

// Model holds the ARX order and fit options.
type Model struct {
	NA            int       `yaml:"na"`
	NB            int       `yaml:"nb"`
	NK            int       `yaml:"nk"`
	Mode          arx.Mode  `yaml:"mode"`
	Shift         arx.Shift `yaml:"shift"`
	RankTolerance float64   `yaml:"rank_tolerance"`
	StrictRank    bool      `yaml:"strict_rank"`
}

// Search bounds the order search.
type Search struct {
	MaxNA     int    `yaml:"max_na"`
	MaxNB     int    `yaml:"max_nb"`
	MaxNK     int    `yaml:"max_nk"`
	Criterion string `yaml:"criterion"`
	Workers   int    `yaml:"workers"`
}

// Output names the files written after a fit. Empty paths are skipped.
type Output struct {
	Plot        string `yaml:"plot"`
	Predictions string `yaml:"predictions"`
}

// Log configures logrus.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	search := autoarx.DefaultConfig()
	return &Config{
		Data: Data{
			TimeColumn:   "t",
			InputColumn:  "u",
			OutputColumn: "y",
			Delimiter:    ",",
		},
		Model: Model{
			NA:            2,
			NB:            2,
			NK:            1,
			Mode:          arx.ModeSimulate,
			Shift:         arx.ShiftNone,
			RankTolerance: arx.DefaultRankTolerance,
		},
		Search: Search{
			MaxNA:     search.MaxNA,
			MaxNB:     search.MaxNB,
			MaxNK:     search.MaxNK,
			Criterion: search.Criterion,
			Workers:   search.Workers,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults, then normalizes and validates it.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) normalize() {
	c.Data.Path = strings.TrimSpace(c.Data.Path)
	c.Search.Criterion = strings.ToLower(strings.TrimSpace(c.Search.Criterion))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Data.Delimiter == "" {
		c.Data.Delimiter = ","
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Order().Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if c.Model.RankTolerance < 0 {
		return fmt.Errorf("model: negative rank_tolerance %g", c.Model.RankTolerance)
	}
	if err := c.SearchConfig().Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("data: delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if c.Data.SkipRows < 0 {
		return fmt.Errorf("data: negative skip_rows %d", c.Data.SkipRows)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

// Order returns the configured model order.
func (c *Config) Order() arx.Order {
	return arx.Order{NA: c.Model.NA, NB: c.Model.NB, NK: c.Model.NK}
}

// ModelOptions returns the arx options for the model section.
func (c *Config) ModelOptions(logger logrus.FieldLogger) []arx.Option {
	opts := []arx.Option{
		arx.WithShift(c.Model.Shift),
		arx.WithRankTolerance(c.Model.RankTolerance),
		arx.WithLogger(logger),
	}
	if c.Model.StrictRank {
		opts = append(opts, arx.WithStrictRank())
	}
	return opts
}

// SearchConfig converts the search section.
func (c *Config) SearchConfig() *autoarx.Config {
	s := autoarx.DefaultConfig()
	s.MaxNA, s.MaxNB, s.MaxNK = c.Search.MaxNA, c.Search.MaxNB, c.Search.MaxNK
	s.Criterion = c.Search.Criterion
	s.Shift = c.Model.Shift
	s.Mode = c.Model.Mode
	if c.Search.Workers > 0 {
		s.Workers = c.Search.Workers
	}
	return s
}

// CSVOptions converts the data section.
func (c *Config) CSVOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	opts.TimeColumn = c.Data.TimeColumn
	opts.InputColumn = c.Data.InputColumn
	opts.OutputColumn = c.Data.OutputColumn
	opts.SkipRows = c.Data.SkipRows
	if r, _ := utf8.DecodeRuneInString(c.Data.Delimiter); r != utf8.RuneError {
		opts.Delimiter = r
	}
	return opts
}

// ConfigureLogger applies the log section to logger.
func (c *Config) ConfigureLogger(logger *logrus.Logger) error {
	if logger == nil {
		return errors.New("config: nil logger")
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	switch c.Log.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
