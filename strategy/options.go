package strategy

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/sartorproj/goforecast/timeseries"
)

// Option keys understood by the built-in strategies.
const (
	KeyRange           = "range"
	KeyPeriodCount     = "period_count"
	KeyIntervalRatio   = "interval_ratio"
	KeyAlpha           = "alpha"
	KeyBeta            = "beta"
	KeyConfidenceLevel = "confidence_level"

	// KeyModel may hold a nested map of model parameters, e.g.
	// {"model": {"alpha": 0.3}}. Top-level keys win over nested ones.
	KeyModel = "model"
)

// Options are per-call strategy parameters. Values may be loosely typed (a
// config file can supply "15" for an integer); unknown keys are ignored.
type Options map[string]any

func (o Options) lookup(key string) (any, bool) {
	if v, ok := o[key]; ok && v != nil {
		return v, true
	}
	raw, ok := o[KeyModel]
	if !ok || raw == nil {
		return nil, false
	}
	model, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, false
	}
	v, ok := model[key]
	return v, ok && v != nil
}

// Float reads key as a float64, returning def when it is absent. NaN and
// infinities are rejected.
func (o Options) Float(key string, def float64) (float64, error) {
	v, ok := o.lookup(key)
	if !ok {
		return def, nil
	}
	if _, isBool := v.(bool); isBool {
		return 0, fmt.Errorf("%w: %s=%v", ErrInvalidOption, key, v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidOption, key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%v", ErrInvalidOption, key, f)
	}
	return f, nil
}

// Range reads key as a timeseries.Range. A Range value, a "a:b" style string
// or a two-element sequence are accepted.
func (o Options) Range(key string, def timeseries.Range) (timeseries.Range, error) {
	v, ok := o.lookup(key)
	if !ok {
		return def, nil
	}
	switch r := v.(type) {
	case timeseries.Range:
		return r, nil
	case *timeseries.Range:
		return *r, nil
	case string:
		parsed, err := timeseries.ParseRange(r)
		if err != nil {
			return timeseries.Range{}, fmt.Errorf("%w: %s: %v", ErrInvalidOption, key, err)
		}
		return parsed, nil
	}
	bounds, err := cast.ToIntSliceE(v)
	if err != nil || len(bounds) != 2 {
		return timeseries.Range{}, fmt.Errorf("%w: %s=%v", ErrInvalidOption, key, v)
	}
	return timeseries.Range{Start: bounds[0], End: bounds[1]}, nil
}

// seriesRange reads the range option, defaulting to the whole series, and
// checks it against the series length.
func (o Options) seriesRange(series *timeseries.Series) (timeseries.Range, error) {
	r, err := o.Range(KeyRange, series.FullRange())
	if err != nil {
		return r, err
	}
	if err := r.Validate(series.Len()); err != nil {
		return r, err
	}
	return r, nil
}

// Option configures a strategy at construction.
type Option func(*config)

type config struct {
	logger         zerolog.Logger
	frequency      int
	seasonalPeriod int
}

func defaultConfig() config {
	return config{
		logger:         zerolog.Nop(),
		frequency:      1,
		seasonalPeriod: 365,
	}
}

func (c config) validate() error {
	if c.frequency < 1 {
		return fmt.Errorf("%w: frequency %d", ErrInvalidOption, c.frequency)
	}
	if c.seasonalPeriod < 1 {
		return fmt.Errorf("%w: seasonal period %d", ErrInvalidOption, c.seasonalPeriod)
	}
	return nil
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithFrequency sets the seasonal frequency used by the Holt-Winters interval
// calculation.
func WithFrequency(frequency int) Option {
	return func(c *config) {
		c.frequency = frequency
	}
}

// WithSeasonalPeriod sets the length of the Holt-Winters seasonal buffer.
func WithSeasonalPeriod(period int) Option {
	return func(c *config) {
		c.seasonalPeriod = period
	}
}
