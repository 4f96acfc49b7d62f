package timeseries

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Unit names a calendar-free time unit a TimeSpan can be expressed in.
type Unit string

const (
	Seconds Unit = "seconds"
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
	Weeks   Unit = "weeks"
)

const (
	secondsInMinute = 60.0
	secondsInHour   = secondsInMinute * 60.0
	secondsInDay    = secondsInHour * 24.0
	secondsInWeek   = secondsInDay * 7.0
)

// seconds returns the number of seconds in one unit.
func (u Unit) seconds() (float64, bool) {
	switch u {
	case Seconds:
		return 1, true
	case Minutes:
		return secondsInMinute, true
	case Hours:
		return secondsInHour, true
	case Days:
		return secondsInDay, true
	case Weeks:
		return secondsInWeek, true
	}
	return 0, false
}

// ParseUnit converts a unit name (case-insensitive) into a Unit.
func ParseUnit(name string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := u.seconds(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, name)
	}
	return u, nil
}

// TimeSpan is a fixed increment of time stored in whole seconds.
// The value is rounded once at construction so repeated advances never drift.
type TimeSpan struct {
	span int64
}

// MaxSpanSeconds is the longest span that still fits a time.Duration.
const MaxSpanSeconds = math.MaxInt64 / int64(time.Second)

// newTimeSpan saturates at MaxSpanSeconds; FromUnit rejects longer spans.
func newTimeSpan(seconds float64) TimeSpan {
	seconds = math.Round(math.Abs(seconds))
	if seconds >= float64(MaxSpanSeconds) {
		return TimeSpan{span: MaxSpanSeconds}
	}
	return TimeSpan{span: int64(seconds)}
}

// FromSeconds creates a span of the given number of seconds.
func FromSeconds(seconds float64) TimeSpan {
	return newTimeSpan(seconds)
}

// FromMinutes creates a span of the given number of minutes.
func FromMinutes(minutes float64) TimeSpan {
	return newTimeSpan(minutes * secondsInMinute)
}

// FromHours creates a span of the given number of hours.
func FromHours(hours float64) TimeSpan {
	return newTimeSpan(hours * secondsInHour)
}

// FromDays creates a span of the given number of days.
func FromDays(days float64) TimeSpan {
	return newTimeSpan(days * secondsInDay)
}

// FromWeeks creates a span of the given number of weeks.
func FromWeeks(weeks float64) TimeSpan {
	return newTimeSpan(weeks * secondsInWeek)
}

// FromUnit creates a span of magnitude units.
func FromUnit(unit Unit, magnitude float64) (TimeSpan, error) {
	per, ok := unit.seconds()
	if !ok {
		return TimeSpan{}, fmt.Errorf("%w: %q", ErrInvalidUnit, string(unit))
	}
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return TimeSpan{}, fmt.Errorf("%w: %v", ErrInvalidSpanType, magnitude)
	}
	if math.Round(math.Abs(magnitude*per)) > float64(MaxSpanSeconds) {
		return TimeSpan{}, fmt.Errorf("%w: %v %s exceeds %d seconds", ErrInvalidSpanType, magnitude, unit, MaxSpanSeconds)
	}
	return newTimeSpan(magnitude * per), nil
}

// FromValue creates a span from loosely typed input such as a decoded config
// value. Numeric strings are accepted; anything that cannot be read as a
// number is rejected with ErrInvalidSpanType.
func FromValue(unit string, magnitude any) (TimeSpan, error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return TimeSpan{}, err
	}
	switch magnitude.(type) {
	case nil, bool:
		return TimeSpan{}, fmt.Errorf("%w: %T", ErrInvalidSpanType, magnitude)
	}
	v, err := cast.ToFloat64E(magnitude)
	if err != nil {
		return TimeSpan{}, fmt.Errorf("%w: %v", ErrInvalidSpanType, err)
	}
	return FromUnit(u, v)
}

// Between returns the span elapsed between two instants.
func Between(t0, t1 time.Time) TimeSpan {
	return newTimeSpan(t1.Sub(t0).Seconds())
}

// Seconds returns the span length in seconds.
func (s TimeSpan) Seconds() int64 {
	return s.span
}

// Duration returns the span as a time.Duration.
func (s TimeSpan) Duration() time.Duration {
	return time.Duration(s.span) * time.Second
}

// IsZero reports whether the span is empty.
func (s TimeSpan) IsZero() bool {
	return s.span == 0
}

// Advance moves t forward by the span.
func (s TimeSpan) Advance(t time.Time) time.Time {
	return t.Add(s.Duration())
}

func (s TimeSpan) String() string {
	return s.Duration().String()
}
