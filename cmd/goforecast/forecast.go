package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goforecast/internal/config"
	"github.com/sartorproj/goforecast/internal/logging"
	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/strategy"
	"github.com/sartorproj/goforecast/timeseries"
)

type forecastFlags struct {
	file         string
	strategy     string
	periods      int
	rng          string
	comparison   bool
	format       string
	precision    int
	set          []string
	logLevel     string
	intervalUnit string
	interval     string
}

func newForecastCmd(cfgFile *string) *cobra.Command {
	var f forecastFlags

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast or backtest a series file (.csv, .json, .yaml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			return runForecast(cmd, cfg, f.file)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "series file to read")
	flags.StringVarP(&f.strategy, "strategy", "s", "", "strategy name (see 'goforecast strategies')")
	flags.IntVarP(&f.periods, "periods", "n", 0, "number of periods to forecast")
	flags.StringVar(&f.rng, "range", "", "record range to fit, e.g. 0:15 (default: whole series)")
	flags.BoolVar(&f.comparison, "comparison", false, "backtest over the records after the range")
	flags.StringVar(&f.format, "format", "", "output format: table, json")
	flags.IntVar(&f.precision, "precision", 0, "decimal places in output")
	flags.StringArrayVar(&f.set, "set", nil, "strategy option as key=value (repeatable)")
	flags.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&f.intervalUnit, "interval-unit", "", "unit of the record spacing: seconds, minutes, hours, days, weeks")
	flags.StringVar(&f.interval, "interval", "", "record spacing in interval units")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// apply overrides config values with the flags that were set.
func (f *forecastFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("strategy") {
		cfg.Strategy.Name = f.strategy
	}
	if changed("periods") {
		cfg.Strategy.Periods = f.periods
	}
	if changed("range") {
		cfg.Strategy.Range = f.rng
	}
	if changed("comparison") {
		cfg.Strategy.Comparison = f.comparison
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("precision") {
		cfg.Output.Precision = f.precision
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("interval-unit") {
		cfg.Series.Interval.Unit = f.intervalUnit
	}
	if changed("interval") {
		cfg.Series.Interval.Magnitude = f.interval
	}

	if cfg.Strategy.Options == nil {
		cfg.Strategy.Options = map[string]any{}
	}
	for _, kv := range f.set {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("--set expects key=value, got %q", kv)
		}
		cfg.Strategy.Options[key] = strings.TrimSpace(value)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// result is the JSON form of a run.
type result struct {
	RunID      string           `json:"run_id"`
	Series     string           `json:"series"`
	Strategy   string           `json:"strategy"`
	Comparison bool             `json:"comparison"`
	Points     []strategy.Point `json:"points"`
	Accuracy   *stats.Accuracy  `json:"accuracy,omitempty"`
}

func runForecast(cmd *cobra.Command, cfg *config.Config, file string) error {
	log, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Close()

	runID := uuid.New().String()
	log = log.With("run_id", runID)

	span, err := cfg.Series.TimeSpan()
	if err != nil {
		return err
	}
	series, err := timeseries.LoadFile(file, cfg.Series.CSVOptions(), timeseries.WithInterval(span))
	if err != nil {
		return fmt.Errorf("loading %s: %w", file, err)
	}
	log.Info("series loaded", "file", file, "points", series.Len(), "interval", span.String())
	log.Debug("series summary", "mean", series.Mean(), "min", series.Min(), "max", series.Max())

	s, err := strategy.NewByName(cfg.Strategy.Name, series, strategy.WithLogger(log.Zerolog()))
	if err != nil {
		return err
	}

	opts := cfg.Strategy.StrategyOptions()
	res := result{
		RunID:      runID,
		Series:     series.Name(),
		Strategy:   cfg.Strategy.Name,
		Comparison: cfg.Strategy.Comparison,
	}

	if cfg.Strategy.Comparison {
		res.Points, err = s.ComparisonForecast(cfg.Strategy.Periods, opts)
	} else {
		res.Points, err = s.Forecast(cfg.Strategy.Periods, opts)
	}
	if err != nil {
		log.Error("forecast failed", "strategy", cfg.Strategy.Name, "error", err)
		return err
	}

	if cfg.Strategy.Comparison {
		rng, err := opts.Range(strategy.KeyRange, series.FullRange())
		if err != nil {
			return err
		}
		acc, err := strategy.Evaluate(series, rng, res.Points)
		if err != nil {
			return err
		}
		if acc.Count == 0 {
			log.Warn("no records after the range to score", "range", rng.String())
		}
		res.Accuracy = &acc
	}

	log.Info("forecast complete", "strategy", cfg.Strategy.Name, "points", len(res.Points))

	out := cmd.OutOrStdout()
	if cfg.Output.Format == "json" {
		return writeJSON(out, res, cfg.Output.Precision)
	}
	return writeTable(out, res, series.TimeSpan(), cfg.Output.Precision)
}
