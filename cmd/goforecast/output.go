package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/sartorproj/goforecast/strategy"
	"github.com/sartorproj/goforecast/timeseries"
)

// fixed renders v with exactly precision decimal places.
func fixed(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(int32(precision))
}

// rounded returns v rounded half away from zero to precision places.
// Non-finite values are passed through.
func rounded(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(int32(precision)).InexactFloat64()
}

// dateLayout drops the clock when the series moves in whole days.
func dateLayout(span timeseries.TimeSpan) string {
	if span.Duration()%(24*time.Hour) == 0 {
		return time.DateOnly
	}
	return time.DateTime
}

func writeJSON(w io.Writer, res result, precision int) error {
	points := make([]strategy.Point, len(res.Points))
	for i, p := range res.Points {
		points[i] = strategy.Point{
			Date:     p.Date,
			Forecast: rounded(p.Forecast, precision),
			Low:      rounded(p.Low, precision),
			High:     rounded(p.High, precision),
		}
	}
	res.Points = points

	if res.Accuracy != nil {
		acc := *res.Accuracy
		acc.MAE = rounded(acc.MAE, precision)
		acc.RMSE = rounded(acc.RMSE, precision)
		acc.MAPE = rounded(acc.MAPE, precision)
		res.Accuracy = &acc
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeTable(w io.Writer, res result, span timeseries.TimeSpan, precision int) error {
	layout := dateLayout(span)

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Date", "Forecast", "Low", "High"}),
	)
	for _, p := range res.Points {
		err := table.Append([]string{
			p.Date.Format(layout),
			fixed(p.Forecast, precision),
			fixed(p.Low, precision),
			fixed(p.High, precision),
		})
		if err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if res.Accuracy != nil {
		acc := res.Accuracy
		fmt.Fprintf(w, "\nBacktest over %d points: MAE %s  RMSE %s  MAPE %s%%  outside band %d\n",
			acc.Count,
			fixed(acc.MAE, precision),
			fixed(acc.RMSE, precision),
			fixed(acc.MAPE, precision),
			acc.OutsideBand,
		)
	}
	return nil
}
