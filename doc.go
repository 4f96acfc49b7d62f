// Package goforecast forecasts dated numeric series with exponential
// smoothing.
//
// The module is organised as:
//
//   - timeseries: the immutable, date-ordered Series, its TimeSpan interval
//     and loaders for CSV, JSON and YAML files
//   - strategy: the EMA and Holt-Winters strategies, their options and a
//     backtest scorer
//   - stats: inverse normal CDF, sample variance and accuracy metrics
//
// # Quick Start
//
// Forecast three days past the end of a daily series:
//
//	series, _ := timeseries.LoadFile("visits.csv", nil,
//	    timeseries.WithInterval(timeseries.FromDays(1)))
//	ema, _ := strategy.NewEMA(series)
//	points, _ := ema.Forecast(3, strategy.Options{"period_count": 15})
//
// Backtest Holt-Winters over the second half of the same data:
//
//	hw, _ := strategy.NewHoltWinters(series)
//	r := timeseries.Range{Start: 0, End: series.Len() / 2}
//	points, _ := hw.ComparisonForecast(1, strategy.Options{"range": r, "alpha": 0.3})
//	acc, _ := strategy.Evaluate(series, r, points)
//
// The goforecast command in cmd/goforecast wraps the same calls with
// configuration, logging and table or JSON output.
package goforecast
