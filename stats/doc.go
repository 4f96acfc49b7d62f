// Package stats provides the numeric helpers shared by the forecasting
// strategies.
//
// # Normal quantiles
//
// CDFInverse returns the standard normal quantile for a probability, used to
// turn a confidence level into an interval multiplier:
//
//	z := stats.CDFInverse((1 + 0.95) / 2) // ~1.96
//
// Probabilities outside (0, 1) yield 0 rather than an error.
//
// # Variance
//
//	v := stats.SampleVariance(residuals)
//
// A single value is returned unchanged and an empty slice yields 0.
//
// # Forecast accuracy
//
// Compare a backtest against what actually happened:
//
//	acc := stats.Evaluate(actual, predicted)
//	fmt.Printf("MAE=%.2f RMSE=%.2f MAPE=%.1f%%\n", acc.MAE, acc.RMSE, acc.MAPE)
package stats
