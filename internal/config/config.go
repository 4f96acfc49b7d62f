// Package config loads the command-line driver configuration.
package config

import (
	"fmt"
	"slices"

	"github.com/sartorproj/goforecast/strategy"
	"github.com/sartorproj/goforecast/timeseries"
)

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Series   SeriesConfig   `mapstructure:"series"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	Output   OutputConfig   `mapstructure:"output"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, none, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// IntervalConfig is the spacing between records. Magnitude is left loosely
// typed so "7" from an environment variable works as well as 7 from YAML.
type IntervalConfig struct {
	Unit      string `mapstructure:"unit"`
	Magnitude any    `mapstructure:"magnitude"`
}

// SeriesConfig describes how input files are read.
type SeriesConfig struct {
	Interval    IntervalConfig `mapstructure:"interval"`
	DateColumn  string         `mapstructure:"date_column"`
	ValueColumn string         `mapstructure:"value_column"`
	DateFormat  string         `mapstructure:"date_format"`
	Delimiter   string         `mapstructure:"delimiter"`
}

// StrategyConfig selects and parameterises the forecasting strategy.
type StrategyConfig struct {
	Name       string         `mapstructure:"name"`
	Periods    int            `mapstructure:"periods"`
	Comparison bool           `mapstructure:"comparison"`
	Range      string         `mapstructure:"range"` // empty means the whole series
	Options    map[string]any `mapstructure:"options"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format    string `mapstructure:"format"` // table, json
	Precision int    `mapstructure:"precision"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := c.Series.Validate(); err != nil {
		return fmt.Errorf("series config: %w", err)
	}
	if err := c.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy config: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

func (c *SeriesConfig) Validate() error {
	if _, err := c.TimeSpan(); err != nil {
		return err
	}
	if len([]rune(c.Delimiter)) > 1 {
		return fmt.Errorf("series.delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

// TimeSpan builds the configured record spacing.
func (c *SeriesConfig) TimeSpan() (timeseries.TimeSpan, error) {
	span, err := timeseries.FromValue(c.Interval.Unit, c.Interval.Magnitude)
	if err != nil {
		return span, fmt.Errorf("series.interval: %w", err)
	}
	if span.IsZero() {
		return span, fmt.Errorf("series.interval: %w", timeseries.ErrZeroSpan)
	}
	return span, nil
}

// CSVOptions converts the column settings for the CSV loader.
func (c *SeriesConfig) CSVOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	opts.DateColumn = c.DateColumn
	opts.ValueColumn = c.ValueColumn
	if c.DateFormat != "" {
		opts.DateFormat = c.DateFormat
	}
	if r := []rune(c.Delimiter); len(r) == 1 {
		opts.Delimiter = r[0]
	}
	return opts
}

func (c *StrategyConfig) Validate() error {
	if !slices.Contains(strategy.Names(), c.Name) {
		return fmt.Errorf("strategy.name must be one of %v, got %q", strategy.Names(), c.Name)
	}
	if c.Periods < 1 {
		return fmt.Errorf("strategy.periods must be positive, got %d", c.Periods)
	}
	if c.Range != "" {
		if _, err := timeseries.ParseRange(c.Range); err != nil {
			return fmt.Errorf("strategy.range: %w", err)
		}
	}
	return nil
}

// StrategyOptions returns the per-call options, with range filled in when set.
func (c *StrategyConfig) StrategyOptions() strategy.Options {
	opts := make(strategy.Options, len(c.Options)+1)
	for k, v := range c.Options {
		opts[k] = v
	}
	if c.Range != "" {
		opts[strategy.KeyRange] = c.Range
	}
	return opts
}

func (c *OutputConfig) Validate() error {
	if c.Format != "table" && c.Format != "json" {
		return fmt.Errorf("output.format must be 'table' or 'json', got %q", c.Format)
	}
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("output.precision must be between 0 and 12, got %d", c.Precision)
	}
	return nil
}
