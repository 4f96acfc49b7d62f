package timeseries

import (
	"math"
	"slices"
	"time"

	"github.com/sartorproj/goforecast/stats"
)

// DefaultInterval is the spacing assumed between records when none is given.
var DefaultInterval = FromDays(30)

// Record is a single dated observation.
type Record struct {
	Date  time.Time
	Value float64
}

// Series is an immutable, date-ordered sequence of records together with the
// nominal spacing between them. Once built it is safe for concurrent readers.
type Series struct {
	records  []Record
	timespan TimeSpan
	name     string
}

// Option configures a Series at construction.
type Option func(*seriesOptions)

type seriesOptions struct {
	timespan *TimeSpan
	name     string
}

// WithInterval sets the expected spacing between records.
func WithInterval(span TimeSpan) Option {
	return func(o *seriesOptions) {
		o.timespan = &span
	}
}

// WithName labels the series.
func WithName(name string) Option {
	return func(o *seriesOptions) {
		o.name = name
	}
}

// New validates records, sorts a copy of them by date and wraps them in a
// Series. Records with equal dates keep their relative input order.
func New(records []Record, opts ...Option) (*Series, error) {
	if records == nil {
		return nil, ErrNilSource
	}
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	for i, r := range records {
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

	o := seriesOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	span := DefaultInterval
	if o.timespan != nil {
		span = *o.timespan
	}
	if span.IsZero() {
		return nil, ErrZeroSpan
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return a.Date.Compare(b.Date)
	})

	return &Series{
		records:  sorted,
		timespan: span,
		name:     o.name,
	}, nil
}

// NewFromSource decodes loosely typed source data and builds a Series from it.
func NewFromSource(source any, opts ...Option) (*Series, error) {
	records, err := Decode(source)
	if err != nil {
		return nil, err
	}
	return New(records, opts...)
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.records)
}

// TimeSpan returns the nominal spacing between records.
func (s *Series) TimeSpan() TimeSpan {
	return s.timespan
}

// Name returns the series label.
func (s *Series) Name() string {
	return s.name
}

// FullRange returns the range covering every record.
func (s *Series) FullRange() Range {
	return Range{Start: 0, End: len(s.records) - 1}
}

// At returns the record at position i.
func (s *Series) At(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return Record{}, ErrIndexOutOfRange
	}
	return s.records[i], nil
}

// Slice returns a copy of the records in r.
func (s *Series) Slice(r Range) ([]Record, error) {
	if err := r.Validate(len(s.records)); err != nil {
		return nil, err
	}
	return slices.Clone(s.records[r.Start : r.End+1]), nil
}

// Each calls fn for every record in date order.
func (s *Series) Each(fn func(i int, r Record)) {
	for i, r := range s.records {
		fn(i, r)
	}
}

// EachInRange calls fn for the records in r. The index passed to fn is the
// position within the series, not within the range.
func (s *Series) EachInRange(r Range, fn func(i int, rec Record)) error {
	if err := r.Validate(len(s.records)); err != nil {
		return err
	}
	for i := r.Start; i <= r.End; i++ {
		fn(i, s.records[i])
	}
	return nil
}

// Records returns a copy of all records.
func (s *Series) Records() []Record {
	return slices.Clone(s.records)
}

// Values returns the observed values in date order.
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.records))
	for i, r := range s.records {
		values[i] = r.Value
	}
	return values
}

// Dates returns the record dates in order.
func (s *Series) Dates() []time.Time {
	dates := make([]time.Time, len(s.records))
	for i, r := range s.records {
		dates[i] = r.Date
	}
	return dates
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	return stats.Mean(s.Values())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	min := s.records[0].Value
	for _, r := range s.records[1:] {
		if r.Value < min {
			min = r.Value
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	max := s.records[0].Value
	for _, r := range s.records[1:] {
		if r.Value > max {
			max = r.Value
		}
	}
	return max
}
