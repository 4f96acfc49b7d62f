package timeseries

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// Validate reports whether source can become a Series, returning the first
// problem found. It accepts the same shapes as Decode.
func Validate(source any) error {
	_, err := Decode(source)
	return err
}

// Decode converts loosely typed source data, such as the output of a JSON or
// YAML decoder, into records. Accepted shapes are []Record, []map[string]any
// and []any whose elements are map[string]any. Each map needs a "date" key
// holding a time.Time or a date string and a numeric "value" key.
func Decode(source any) ([]Record, error) {
	var items []any
	switch src := source.(type) {
	case nil:
		return nil, ErrNilSource
	case []Record:
		if src == nil {
			return nil, ErrNilSource
		}
		if len(src) == 0 {
			return nil, ErrEmptySource
		}
		for i, r := range src {
			if r.Date.IsZero() {
				return nil, &RecordError{Index: i, Err: ErrMissingDate}
			}
			if math.IsNaN(r.Value) {
				return nil, &RecordError{Index: i, Err: ErrMissingValue}
			}
			if math.IsInf(r.Value, 0) {
				return nil, &RecordError{Index: i, Err: ErrInvalidValue}
			}
		}
		return src, nil
	case []map[string]any:
		if src == nil {
			return nil, ErrNilSource
		}
		items = make([]any, len(src))
		for i, m := range src {
			items[i] = m
		}
	case []any:
		if src == nil {
			return nil, ErrNilSource
		}
		items = src
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidSource, source)
	}

	if len(items) == 0 {
		return nil, ErrEmptySource
	}

	records := make([]Record, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &RecordError{Index: i, Err: ErrInvalidRecordType}
		}
		rec, err := decodeRecord(m)
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		records[i] = rec
	}
	return records, nil
}

func decodeRecord(m map[string]any) (Record, error) {
	rawDate, ok := m["date"]
	if !ok || rawDate == nil {
		return Record{}, ErrMissingDate
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return Record{}, err
	}

	rawValue, ok := m["value"]
	if !ok || rawValue == nil {
		return Record{}, ErrMissingValue
	}
	if _, isBool := rawValue.(bool); isBool {
		return Record{}, ErrInvalidValue
	}
	value, err := cast.ToFloat64E(rawValue)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Record{}, ErrInvalidValue
	}

	return Record{Date: date, Value: value}, nil
}

func parseDate(raw any) (time.Time, error) {
	switch d := raw.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, ErrInvalidDate
		}
		return d, nil
	case string:
		return parseDateString(d, "")
	}
	return time.Time{}, ErrInvalidDate
}

// parseDateString tries layout first (if set) and then the known layouts.
func parseDateString(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, "\""))
	if layout != "" {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
