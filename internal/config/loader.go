package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GOFORECAST_STRATEGY_NAME.
const EnvPrefix = "GOFORECAST"

// Load loads configuration from file. With an empty path the usual locations
// are searched and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("goforecast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.config/goforecast")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)

	v.SetDefault("series.interval.unit", d.Series.Interval.Unit)
	v.SetDefault("series.interval.magnitude", d.Series.Interval.Magnitude)
	v.SetDefault("series.date_column", d.Series.DateColumn)
	v.SetDefault("series.value_column", d.Series.ValueColumn)
	v.SetDefault("series.date_format", d.Series.DateFormat)
	v.SetDefault("series.delimiter", d.Series.Delimiter)

	v.SetDefault("strategy.name", d.Strategy.Name)
	v.SetDefault("strategy.periods", d.Strategy.Periods)
	v.SetDefault("strategy.comparison", d.Strategy.Comparison)
	v.SetDefault("strategy.range", d.Strategy.Range)
	v.SetDefault("strategy.options", d.Strategy.Options)

	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.precision", d.Output.Precision)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			OutputPath: "stderr",
			TimeFormat: "RFC3339",
		},
		Series: SeriesConfig{
			Interval: IntervalConfig{
				Unit:      "days",
				Magnitude: 30,
			},
			DateFormat: "2006-01-02",
			Delimiter:  ",",
		},
		Strategy: StrategyConfig{
			Name:    "ema",
			Periods: 3,
			Options: map[string]any{},
		},
		Output: OutputConfig{
			Format:    "table",
			Precision: 2,
		},
	}
}
