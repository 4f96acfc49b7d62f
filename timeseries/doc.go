// Package timeseries provides the dated series container used by the
// forecasting strategies.
//
// A Series is built once from records, sorted by date and never modified
// afterwards. It carries a TimeSpan describing the nominal spacing between
// records; forecast dates are produced by advancing that span.
//
// # Creating a Series
//
//	records := []timeseries.Record{
//	    {Date: time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC), Value: 6602},
//	    {Date: time.Date(2010, 3, 2, 0, 0, 0, 0, time.UTC), Value: 7298},
//	}
//	series, err := timeseries.New(records, timeseries.WithInterval(timeseries.FromDays(1)))
//
// Without WithInterval the spacing defaults to 30 days.
//
// # Loosely typed input
//
// Decode and NewFromSource accept the shapes produced by JSON or YAML
// decoders and report exactly which record is malformed:
//
//	series, err := timeseries.NewFromSource(source)
//	var recErr *timeseries.RecordError
//	if errors.As(err, &recErr) {
//	    fmt.Println("bad record at", recErr.Index)
//	}
//
// # Time spans
//
//	span := timeseries.FromHours(12)
//	span, err := timeseries.FromValue("days", "7") // coerced from config text
//	next := span.Advance(last)
//
// Spans are stored in whole seconds; fractional seconds are rounded once at
// construction and negative magnitudes are made positive.
//
// # Loading files
//
//	series, err := timeseries.LoadFile("visits.csv", nil, timeseries.WithInterval(timeseries.FromDays(1)))
//
// CSV, JSON and YAML files are supported.
package timeseries
