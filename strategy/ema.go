package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goforecast/timeseries"
)

const (
	defaultPeriodCount   = 365
	defaultIntervalRatio = 5.0
)

func init() {
	Register("ema", func(series *timeseries.Series, opts ...Option) (Strategy, error) {
		s, err := NewEMA(series, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// EMAContext is the running state of one EMA pass. It is created per call and
// threaded through StepEMA.
type EMAContext struct {
	Alpha         float64
	IntervalRatio float64
	Residuals     []float64
	Last          Prediction
}

// NewEMAContext seeds a context with an initial prediction.
func NewEMAContext(alpha, intervalRatio float64, initial Prediction) *EMAContext {
	return &EMAContext{
		Alpha:         alpha,
		IntervalRatio: intervalRatio,
		Last:          initial,
	}
}

// MeanResidual is recomputed over every residual seen so far rather than kept
// as a running mean, so rounding error does not accumulate.
func (c *EMAContext) MeanResidual() float64 {
	if len(c.Residuals) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range c.Residuals {
		sum += r
	}
	return sum / float64(len(c.Residuals))
}

// StepEMA folds one observation into ctx and returns the resulting
// prediction, which also becomes ctx.Last.
func StepEMA(ctx *EMAContext, date time.Time, value float64) Prediction {
	p := NewPrediction(date, value)
	p.Predicted = ctx.Alpha*value + (1-ctx.Alpha)*ctx.Last.Predicted

	ctx.Residuals = append(ctx.Residuals, math.Abs(p.Predicted-value))
	width := ctx.IntervalRatio * ctx.MeanResidual()
	p.Low = p.Predicted - width
	p.High = p.Predicted + width

	// Always false: the band is centred on Predicted.
	p.Outlier = p.OutsideBand()

	ctx.Last = p
	return p
}

// EMA forecasts with an exponential moving average and a band sized from the
// mean absolute residual.
//
// Options: period_count (default 365, alpha = 2/(period_count+1)),
// interval_ratio (default 5) and range (default the whole series).
type EMA struct {
	Base
}

// NewEMA creates an EMA strategy. The series needs at least two records.
func NewEMA(series *timeseries.Series, opts ...Option) (*EMA, error) {
	base, err := NewBase(series, opts...)
	if err != nil {
		return nil, err
	}
	if series.Len() < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDataSetLength, series.Len())
	}
	return &EMA{Base: *base}, nil
}

type emaParams struct {
	alpha         float64
	intervalRatio float64
	rng           timeseries.Range
}

func (e *EMA) params(opts Options) (emaParams, error) {
	periodCount, err := opts.Float(KeyPeriodCount, defaultPeriodCount)
	if err != nil {
		return emaParams{}, err
	}
	if periodCount <= 0 {
		return emaParams{}, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidOption, KeyPeriodCount, periodCount)
	}
	ratio, err := opts.Float(KeyIntervalRatio, defaultIntervalRatio)
	if err != nil {
		return emaParams{}, err
	}
	if ratio < 0 {
		return emaParams{}, fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidOption, KeyIntervalRatio, ratio)
	}
	rng, err := opts.seriesRange(e.series)
	if err != nil {
		return emaParams{}, err
	}
	return emaParams{
		alpha:         2 / (periodCount + 1),
		intervalRatio: ratio,
		rng:           rng,
	}, nil
}

// replay seeds a context from the first record in range and steps it through
// the rest of the range.
func (e *EMA) replay(p emaParams) (*EMAContext, error) {
	var ctx *EMAContext
	err := e.series.EachInRange(p.rng, func(_ int, r timeseries.Record) {
		if ctx == nil {
			ctx = NewEMAContext(p.alpha, p.intervalRatio, NewPrediction(r.Date, r.Value))
			return
		}
		StepEMA(ctx, r.Date, r.Value)
	})
	return ctx, err
}

// project appends n synthetic steps that feed each prediction back in as the
// next observation.
func (e *EMA) project(ctx *EMAContext, n int, out []Point) []Point {
	span := e.series.TimeSpan()
	for i := 0; i < n; i++ {
		p := StepEMA(ctx, span.Advance(ctx.Last.Date), ctx.Last.Predicted)
		out = append(out, p.Point())
	}
	return out
}

// Forecast replays the range and returns periodsAhead projected points.
func (e *EMA) Forecast(periodsAhead int, opts Options) ([]Point, error) {
	if err := checkPeriods(periodsAhead, 0); err != nil {
		return nil, err
	}
	p, err := e.params(opts)
	if err != nil {
		return nil, err
	}

	ctx, err := e.replay(p)
	if err != nil {
		return nil, err
	}

	out := e.project(ctx, periodsAhead, make([]Point, 0, periodsAhead))

	e.logger.Debug().
		Str("strategy", "ema").
		Stringer("range", p.rng).
		Float64("alpha", p.alpha).
		Int("points", len(out)).
		Msg("forecast complete")
	return out, nil
}

// ComparisonForecast replays the range, then keeps stepping through the
// records after it, emitting a point for each, and finally projects
// periodsAhead points past the end of the series.
func (e *EMA) ComparisonForecast(periodsAhead int, opts Options) ([]Point, error) {
	if err := checkPeriods(periodsAhead, 1); err != nil {
		return nil, err
	}
	p, err := e.params(opts)
	if err != nil {
		return nil, err
	}

	ctx, err := e.replay(p)
	if err != nil {
		return nil, err
	}

	n := e.series.Len()
	out := make([]Point, 0, n-p.rng.End-1+periodsAhead)
	if p.rng.End+1 < n {
		err = e.series.EachInRange(timeseries.Range{Start: p.rng.End + 1, End: n - 1}, func(_ int, r timeseries.Record) {
			out = append(out, StepEMA(ctx, r.Date, r.Value).Point())
		})
		if err != nil {
			return nil, err
		}
	}
	out = e.project(ctx, periodsAhead, out)

	e.logger.Debug().
		Str("strategy", "ema").
		Stringer("range", p.rng).
		Float64("alpha", p.alpha).
		Int("points", len(out)).
		Msg("comparison forecast complete")
	return out, nil
}
