// Package strategy implements the forecasting strategies.
//
// Two strategies are provided:
//
//   - EMA: an exponential moving average with a band of interval_ratio times
//     the mean absolute residual around each prediction.
//   - HoltWinters: additive Holt-Winters smoothing of level and optional trend,
//     with intervals from the residual variance at a confidence level.
//
// Both implement Strategy:
//
//	s, err := strategy.NewEMA(series)
//	points, err := s.Forecast(3, strategy.Options{
//	    "period_count":   15,
//	    "interval_ratio": 5,
//	    "range":          "0:15",
//	})
//
// ComparisonForecast backtests over data already in the series; Evaluate
// scores its output:
//
//	points, err := s.ComparisonForecast(1, strategy.Options{"range": "0:15"})
//	acc, err := strategy.Evaluate(series, timeseries.Range{Start: 0, End: 15}, points)
//
// Strategies are also available by name, e.g. from configuration:
//
//	s, err := strategy.NewByName("holt_winters", series, strategy.WithLogger(log))
//
// Option values are loosely typed; "15" is as good as 15.
package strategy
