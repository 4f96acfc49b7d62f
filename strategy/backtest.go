package strategy

import (
	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

// Evaluate scores comparison-forecast points against the actual values that
// follow r.End. points[i] is paired with the record at r.End+1+i; points past
// the end of the series are ignored.
func Evaluate(series *timeseries.Series, r timeseries.Range, points []Point) (stats.Accuracy, error) {
	if series == nil {
		return stats.Accuracy{}, ErrNilSeries
	}
	if err := r.Validate(series.Len()); err != nil {
		return stats.Accuracy{}, err
	}

	values := series.Values()
	var actual, predicted []float64
	outside := 0
	for i, pt := range points {
		j := r.End + 1 + i
		if j >= len(values) {
			break
		}
		actual = append(actual, values[j])
		predicted = append(predicted, pt.Forecast)
		if values[j] < pt.Low || values[j] > pt.High {
			outside++
		}
	}

	acc := stats.Evaluate(actual, predicted)
	acc.OutsideBand = outside
	return acc, nil
}
