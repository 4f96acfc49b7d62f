package strategy

import "time"

// Prediction is the working record for one step of a smoothing run.
type Prediction struct {
	Date      time.Time
	Actual    float64
	Predicted float64
	Low       float64
	High      float64
	Outlier   bool
}

// NewPrediction starts a prediction whose predicted value and band all equal
// the observed value.
func NewPrediction(date time.Time, value float64) Prediction {
	return Prediction{
		Date:      date,
		Actual:    value,
		Predicted: value,
		Low:       value,
		High:      value,
	}
}

// OutsideBand reports whether the predicted value falls outside [Low, High].
func (p Prediction) OutsideBand() bool {
	return p.Predicted < p.Low || p.Predicted > p.High
}

// Point converts the prediction to its emitted form.
func (p Prediction) Point() Point {
	return Point{
		Date:     p.Date,
		Forecast: p.Predicted,
		Low:      p.Low,
		High:     p.High,
	}
}
