package main

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goforecast/strategy"
	"github.com/sartorproj/goforecast/timeseries"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestForecastJSON(t *testing.T) {
	out, err := execute(t, "forecast",
		"--file", "testdata/daily.csv",
		"--interval", "1",
		"--strategy", "ema",
		"--periods", "2",
		"--set", "period_count=15",
		"--set", "interval_ratio=5",
		"--format", "json",
	)
	require.NoError(t, err)

	var res struct {
		RunID      string `json:"run_id"`
		Series     string `json:"series"`
		Strategy   string `json:"strategy"`
		Comparison bool   `json:"comparison"`
		Points     []struct {
			Date     string  `json:"date"`
			Forecast float64 `json:"forecast"`
		} `json:"points"`
		Accuracy map[string]any `json:"accuracy"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "daily.csv", res.Series)
	assert.Equal(t, "ema", res.Strategy)
	assert.False(t, res.Comparison)
	assert.Nil(t, res.Accuracy)
	require.Len(t, res.Points, 2)
	assert.Equal(t, 6252.28, res.Points[0].Forecast)
	assert.Equal(t, "2010-04-01T00:00:00Z", res.Points[0].Date)
}

func TestForecastTable(t *testing.T) {
	out, err := execute(t, "forecast",
		"-f", "testdata/daily.csv",
		"--interval", "1",
		"--set", "period_count=15",
		"--range", "0:1",
		"-n", "1",
		"--precision", "1",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "2010-03-03")
	assert.Contains(t, out, "6689.0")
}

func TestForecastComparisonReportsAccuracy(t *testing.T) {
	out, err := execute(t, "forecast",
		"--file", "testdata/daily.csv",
		"--interval", "1",
		"--strategy", "holt_winters",
		"--range", "0:20",
		"--periods", "3",
		"--comparison",
		"--set", "alpha=0.3",
		"--format", "json",
	)
	require.NoError(t, err)

	var res struct {
		Points   []json.RawMessage `json:"points"`
		Accuracy struct {
			Count int     `json:"count"`
			MAE   float64 `json:"mae"`
		} `json:"accuracy"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Points, 31-20)
	assert.Equal(t, 10, res.Accuracy.Count)
	assert.Greater(t, res.Accuracy.MAE, 0.0)

	out, err = execute(t, "forecast",
		"--file", "testdata/daily.csv",
		"--interval", "1",
		"--range", "0:20",
		"--comparison",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Backtest over 10 points")
}

func TestForecastErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file flag", []string{"forecast"}},
		{"unknown strategy", []string{"forecast", "--file", "testdata/daily.csv", "--strategy", "arima"}},
		{"malformed set", []string{"forecast", "--file", "testdata/daily.csv", "--set", "alpha"}},
		{"bad range", []string{"forecast", "--file", "testdata/daily.csv", "--range", "0:99"}},
		{"missing file", []string{"forecast", "--file", "testdata/nope.csv"}},
		{"bad format", []string{"forecast", "--file", "testdata/daily.csv", "--format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}

	_, err := execute(t, "forecast", "--file", "testdata/daily.csv", "--range", "0:99")
	assert.ErrorIs(t, err, timeseries.ErrInvalidRange)

	for _, set := range []string{"alpha=NaN", "confidence_level=nan", "beta=-Inf"} {
		_, err = execute(t, "forecast", "--file", "testdata/daily.csv", "--strategy", "holt_winters", "--set", set)
		assert.ErrorIs(t, err, strategy.ErrInvalidOption, set)
	}
	for _, set := range []string{"period_count=NaN", "interval_ratio=+Inf"} {
		_, err = execute(t, "forecast", "--file", "testdata/daily.csv", "--set", set)
		assert.ErrorIs(t, err, strategy.ErrInvalidOption, set)
	}
}

func TestStrategiesAndVersion(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)
	assert.Equal(t, "ema\nholt_winters\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "goforecast dev\n", out)
}

func TestFixedAndRounded(t *testing.T) {
	assert.Equal(t, "6252.28", fixed(6252.278272, 2))
	assert.Equal(t, "3.0", fixed(3, 1))
	assert.Equal(t, 2.35, rounded(2.345, 2))
	assert.Equal(t, "NaN", fixed(math.NaN(), 2))
	assert.Equal(t, "+Inf", fixed(math.Inf(1), 2))
	assert.True(t, math.IsNaN(rounded(math.NaN(), 2)))
	assert.Equal(t, "2006-01-02", dateLayout(timeseries.FromDays(1)))
	assert.Equal(t, "2006-01-02 15:04:05", dateLayout(timeseries.FromHours(12)))
}
