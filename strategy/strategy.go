package strategy

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sartorproj/goforecast/timeseries"
)

var (
	ErrNilSeries            = errors.New("strategy: invalid timeseries")
	ErrUnimplemented        = errors.New("strategy: unimplemented strategy")
	ErrInvalidPeriods       = errors.New("strategy: invalid number of periods")
	ErrInvalidDataSetLength = errors.New("strategy: invalid data set length")
	ErrInsufficientData     = errors.New("strategy: insufficient data in range")
	ErrInvalidOption        = errors.New("strategy: invalid option")
	ErrUnknownStrategy      = errors.New("strategy: unknown strategy")
)

// Strategy produces forecasts from a series.
//
// Forecast projects periodsAhead points past the end of the configured range.
// ComparisonForecast walks forward from the end of the range over data that is
// already known, so the output can be compared with the actual values.
type Strategy interface {
	Forecast(periodsAhead int, opts Options) ([]Point, error)
	ComparisonForecast(periodsAhead int, opts Options) ([]Point, error)
}

// Point is a single emitted forecast.
type Point struct {
	Date     time.Time `json:"date"`
	Forecast float64   `json:"forecast"`
	Low      float64   `json:"low"`
	High     float64   `json:"high"`
}

// Base holds the series and settings shared by every strategy. Its own
// Forecast and ComparisonForecast always fail with ErrUnimplemented; concrete
// strategies embed it and provide both.
type Base struct {
	series         *timeseries.Series
	logger         zerolog.Logger
	frequency      int
	seasonalPeriod int
}

// NewBase checks the series and applies constructor options.
func NewBase(series *timeseries.Series, opts ...Option) (*Base, error) {
	if series == nil {
		return nil, ErrNilSeries
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Base{
		series:         series,
		logger:         cfg.logger,
		frequency:      cfg.frequency,
		seasonalPeriod: cfg.seasonalPeriod,
	}, nil
}

// Series returns the series the strategy forecasts from.
func (b *Base) Series() *timeseries.Series {
	return b.series
}

func (b *Base) Forecast(int, Options) ([]Point, error) {
	return nil, ErrUnimplemented
}

func (b *Base) ComparisonForecast(int, Options) ([]Point, error) {
	return nil, ErrUnimplemented
}

// stampDates gives points consecutive dates, the first one a span after start.
func (b *Base) stampDates(start time.Time, points []Point) {
	span := b.series.TimeSpan()
	next := span.Advance(start)
	for i := range points {
		points[i].Date = next
		next = span.Advance(next)
	}
}

func checkPeriods(periodsAhead, least int) error {
	if periodsAhead < least {
		return fmt.Errorf("%w: %d", ErrInvalidPeriods, periodsAhead)
	}
	return nil
}
