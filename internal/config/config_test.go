package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goforecast/strategy"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default config should be valid", func(*Config) {}, false},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"unknown interval unit", func(c *Config) { c.Series.Interval.Unit = "fortnights" }, true},
		{"non-numeric interval", func(c *Config) { c.Series.Interval.Magnitude = "bob" }, true},
		{"zero interval", func(c *Config) { c.Series.Interval.Magnitude = 0 }, true},
		{"string interval", func(c *Config) { c.Series.Interval.Magnitude = "7" }, false},
		{"long delimiter", func(c *Config) { c.Series.Delimiter = ";;" }, true},
		{"unknown strategy", func(c *Config) { c.Strategy.Name = "arima" }, true},
		{"holt winters", func(c *Config) { c.Strategy.Name = "holt_winters" }, false},
		{"zero periods", func(c *Config) { c.Strategy.Periods = 0 }, true},
		{"bad range", func(c *Config) { c.Strategy.Range = "ten" }, true},
		{"good range", func(c *Config) { c.Strategy.Range = "0:15" }, false},
		{"unknown output format", func(c *Config) { c.Output.Format = "csv" }, true},
		{"negative precision", func(c *Config) { c.Output.Precision = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ema", cfg.Strategy.Name)
	assert.Equal(t, 3, cfg.Strategy.Periods)
	assert.Equal(t, "table", cfg.Output.Format)
	span, err := cfg.Series.TimeSpan()
	require.NoError(t, err)
	assert.Equal(t, int64(30*24*60*60), span.Seconds())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goforecast.yaml")
	content := `
logging:
  level: debug
  format: json
series:
  interval:
    unit: hours
    magnitude: "12"
  date_column: when
  value_column: visitors
  delimiter: ";"
strategy:
  name: holt_winters
  periods: 5
  comparison: true
  range: "0:20"
  options:
    alpha: 0.3
    confidence_level: 0.9
output:
  format: json
  precision: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	span, err := cfg.Series.TimeSpan()
	require.NoError(t, err)
	assert.Equal(t, int64(12*60*60), span.Seconds())

	csvOpts := cfg.Series.CSVOptions()
	assert.Equal(t, "when", csvOpts.DateColumn)
	assert.Equal(t, "visitors", csvOpts.ValueColumn)
	assert.Equal(t, ';', csvOpts.Delimiter)

	assert.Equal(t, "holt_winters", cfg.Strategy.Name)
	assert.Equal(t, 5, cfg.Strategy.Periods)
	assert.True(t, cfg.Strategy.Comparison)

	opts := cfg.Strategy.StrategyOptions()
	alpha, err := opts.Float(strategy.KeyAlpha, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.3, alpha)
	assert.Equal(t, "0:20", opts[strategy.KeyRange])

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 4, cfg.Output.Precision)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GOFORECAST_STRATEGY_NAME", "holt_winters")
	t.Setenv("GOFORECAST_STRATEGY_PERIODS", "9")
	t.Setenv("GOFORECAST_SERIES_INTERVAL_MAGNITUDE", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "holt_winters", cfg.Strategy.Name)
	assert.Equal(t, 9, cfg.Strategy.Periods)
	span, err := cfg.Series.TimeSpan()
	require.NoError(t, err)
	assert.Equal(t, int64(7*24*60*60), span.Seconds())
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goforecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "output.format")
}

func TestStrategyOptionsDoesNotAlias(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy.Options["alpha"] = 0.5

	opts := cfg.Strategy.StrategyOptions()
	opts["alpha"] = 0.9
	assert.Equal(t, 0.5, cfg.Strategy.Options["alpha"])
	_, hasRange := opts[strategy.KeyRange]
	assert.False(t, hasRange)
}
