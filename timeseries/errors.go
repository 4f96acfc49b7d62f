package timeseries

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSource is returned when no source data is given at all.
	ErrNilSource = errors.New("timeseries: nil source")
	// ErrInvalidSource is returned when the source is not a sequence of records.
	ErrInvalidSource = errors.New("timeseries: invalid source")
	// ErrEmptySource is returned for a source with no records.
	ErrEmptySource = errors.New("timeseries: empty source")

	ErrInvalidRecordType = errors.New("invalid record type")
	ErrMissingDate       = errors.New("missing date attribute")
	ErrInvalidDate       = errors.New("invalid date attribute")
	ErrMissingValue      = errors.New("missing value attribute")
	ErrInvalidValue      = errors.New("invalid value attribute")

	ErrInvalidUnit     = errors.New("timeseries: invalid span unit")
	ErrInvalidSpanType = errors.New("timeseries: invalid span type")
	ErrZeroSpan        = errors.New("timeseries: non-zero span is required")

	ErrIndexOutOfRange = errors.New("timeseries: index out of range")
	ErrInvalidRange    = errors.New("timeseries: invalid range")
)

// RecordError reports a malformed record and its position in the source.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("timeseries: %v at index %d", e.Err, e.Index)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
