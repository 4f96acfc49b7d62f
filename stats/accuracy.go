package stats

import "math"

// Accuracy summarises how far a set of forecasts landed from the actual values.
type Accuracy struct {
	MAE         float64 `json:"mae"`
	RMSE        float64 `json:"rmse"`
	MAPE        float64 `json:"mape"` // percent
	Count       int     `json:"count"`
	OutsideBand int     `json:"outside_band"`
}

// Evaluate computes MAE, RMSE and MAPE over paired slices. Mismatched or empty
// input yields a zero Accuracy.
func Evaluate(actual, predicted []float64) Accuracy {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return Accuracy{}
	}
	return Accuracy{
		MAE:   MAE(actual, predicted),
		RMSE:  RMSE(actual, predicted),
		MAPE:  MAPE(actual, predicted),
		Count: len(actual),
	}
}

// MAPE calculates the mean absolute percentage error. Zero actuals are skipped.
func MAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// MAE calculates the mean absolute error.
func MAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// RMSE calculates the root mean squared error.
func RMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}
