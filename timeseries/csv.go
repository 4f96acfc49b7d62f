package timeseries

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (default: first of ds/date/Date)
	ValueColumn string // Column name for values (default: y/value/Value, else last column)
	DateFormat  string // Preferred date layout (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions, seriesOpts ...Option) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts, append([]Option{WithName(filepath.Base(filename))}, seriesOpts...)...)
}

// LoadCSVFromReader loads a time series from an io.Reader. Rows whose value is
// blank or NA are skipped; a row with an unreadable date or value is an error.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions, seriesOpts ...Option) (*Series, error) {
	records, err := ReadCSV(r, opts)
	if err != nil {
		return nil, err
	}
	return New(records, seriesOpts...)
}

// ReadCSV parses dated records from CSV without building a Series.
func ReadCSV(r io.Reader, opts *CSVOptions) ([]Record, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	dateIdx, valueIdx := 0, 1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		dateIdx, valueIdx = -1, -1
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case opts.ValueColumn != "" && h == opts.ValueColumn:
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case opts.ValueColumn == "" && (h == "y" || h == "value" || h == "Value"):
				if valueIdx == -1 {
					valueIdx = i
				}
			case opts.DateColumn == "" && (h == "ds" || h == "date" || h == "Date"):
				if dateIdx == -1 {
					dateIdx = i
				}
			}
		}
		if dateIdx == -1 {
			return nil, fmt.Errorf("%w: no date column in header", ErrInvalidSource)
		}
		if valueIdx == -1 {
			valueIdx = len(header) - 1
		}
	}

	var records []Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		if valueIdx >= len(fields) || dateIdx >= len(fields) {
			return nil, &RecordError{Index: row - 1, Err: ErrInvalidRecordType}
		}

		valStr := strings.TrimSpace(strings.Trim(fields[valueIdx], "\""))
		if valStr == "" || strings.EqualFold(valStr, "NA") || strings.EqualFold(valStr, "NaN") || valStr == "null" {
			continue
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil || math.IsInf(val, 0) {
			return nil, &RecordError{Index: row - 1, Err: ErrInvalidValue}
		}
		date, err := parseDateString(fields[dateIdx], opts.DateFormat)
		if err != nil {
			return nil, &RecordError{Index: row - 1, Err: err}
		}
		records = append(records, Record{Date: date, Value: val})
	}

	if len(records) == 0 {
		return nil, errors.New("timeseries: no valid data found in CSV")
	}
	return records, nil
}

// LoadFile loads a series from a .csv, .json, .yaml or .yml file. JSON and
// YAML files hold a list of {date, value} objects.
func LoadFile(filename string, csvOpts *CSVOptions, seriesOpts ...Option) (*Series, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".csv" || ext == ".txt" {
		return LoadCSV(filename, csvOpts, seriesOpts...)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var source []any
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &source)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &source)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidSource, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if source == nil {
		return nil, ErrEmptySource
	}

	opts := append([]Option{WithName(filepath.Base(filename))}, seriesOpts...)
	return NewFromSource(source, opts...)
}
