package strategy

import (
	"fmt"
	"math"

	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

const (
	defaultAlpha           = 0.1
	defaultBeta            = 0.0
	defaultConfidenceLevel = 0.95

	// Seasonal smoothing is not supported; the seasonal terms stay at zero.
	seasonalGamma = 0.0
)

func init() {
	Register("holt_winters", func(series *timeseries.Series, opts ...Option) (Strategy, error) {
		s, err := NewHoltWinters(series, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// HoltWinters forecasts with additive Holt-Winters smoothing of level and,
// when beta > 0, trend. Intervals follow the variance of one-step residuals.
//
// Options: alpha (default 0.1), beta (default 0), confidence_level (default
// 0.95) and range (default the whole series). Alpha and beta are clamped to
// [0, 1].
type HoltWinters struct {
	Base
}

// NewHoltWinters creates a Holt-Winters strategy.
func NewHoltWinters(series *timeseries.Series, opts ...Option) (*HoltWinters, error) {
	base, err := NewBase(series, opts...)
	if err != nil {
		return nil, err
	}
	return &HoltWinters{Base: *base}, nil
}

type hwParams struct {
	alpha      float64
	beta       float64
	confidence float64
	rng        timeseries.Range
}

func (h *HoltWinters) params(opts Options) (hwParams, error) {
	alpha, err := opts.Float(KeyAlpha, defaultAlpha)
	if err != nil {
		return hwParams{}, err
	}
	beta, err := opts.Float(KeyBeta, defaultBeta)
	if err != nil {
		return hwParams{}, err
	}
	confidence, err := opts.Float(KeyConfidenceLevel, defaultConfidenceLevel)
	if err != nil {
		return hwParams{}, err
	}
	if confidence <= 0 || confidence >= 1 {
		return hwParams{}, fmt.Errorf("%w: %s must be in (0, 1), got %v", ErrInvalidOption, KeyConfidenceLevel, confidence)
	}
	rng, err := opts.seriesRange(h.series)
	if err != nil {
		return hwParams{}, err
	}
	return hwParams{
		alpha:      clamp01(alpha),
		beta:       clamp01(beta),
		confidence: confidence,
		rng:        rng,
	}, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// hwState is the output of one smoothing run.
type hwState struct {
	level  []float64
	trend  []float64
	season []float64
	sse    float64
}

// smooth runs the level/trend recurrence over x from startTime onwards.
// level[i0] is the level estimate after observing x[startTime+i0-1].
func (h *HoltWinters) smooth(x []float64, alpha, beta, levelStart, trendStart float64, startTime int) hwState {
	doTrend := beta > 0
	n := len(x) - startTime + 1

	st := hwState{
		level:  make([]float64, n),
		trend:  make([]float64, n),
		season: make([]float64, h.seasonalPeriod),
	}
	st.level[0] = levelStart
	if doTrend {
		st.trend[0] = trendStart
	}

	for i := startTime; i < len(x); i++ {
		i0 := i - startTime + 1

		xhat := st.level[i0-1]
		if doTrend {
			xhat += st.trend[i0-1]
		}
		// season[s0-period] with s0 = i0+period-1; always zero here.
		stmp := st.season[(i0-1)%h.seasonalPeriod]
		xhat += stmp

		res := x[i] - xhat
		st.sse += res * res

		st.level[i0] = alpha*(x[i]-stmp) + (1-alpha)*(st.level[i0-1]+st.trend[i0-1])
		if doTrend {
			st.trend[i0] = beta*(st.level[i0]-st.level[i0-1]) + (1-beta)*st.trend[i0-1]
		}
	}
	return st
}

// psi is the weight of the j-step-back error in the h-step forecast variance.
func (h *HoltWinters) psi(j int, alpha, beta float64) float64 {
	seasonal := 0.0
	if j%h.frequency == 0 {
		seasonal = 1
	}
	return alpha*(1+float64(j)*beta) + seasonal*seasonalGamma*(1-alpha)
}

// variance returns the forecast variance at horizon steps ahead, scaling the
// sample variance of one-step residuals.
func (h *HoltWinters) variance(x, level []float64, horizon int, alpha, beta float64) float64 {
	residuals := make([]float64, 0, len(x))
	for i := 1; i < len(x) && i-1 < len(level); i++ {
		residuals = append(residuals, x[i]-level[i-1])
	}
	v := stats.SampleVariance(residuals)

	sum := 1.0
	for j := 1; j < horizon; j++ {
		p := h.psi(j, alpha, beta)
		sum += p * p
	}
	return v * sum
}

// fit smooths x and returns periods undated forecasts.
func (h *HoltWinters) fit(x []float64, p hwParams, periods int) ([]Point, error) {
	doTrend := p.beta > 0

	startTime, levelStart, trendStart := 1, x[0], 0.0
	if doTrend {
		if len(x) < 2 {
			return nil, fmt.Errorf("%w: trend needs 2 points, have %d", ErrInsufficientData, len(x))
		}
		startTime, levelStart, trendStart = 2, x[1], x[1]-x[0]
	}

	st := h.smooth(x, p.alpha, p.beta, levelStart, trendStart, startTime)

	value := st.level[len(st.level)-1]
	if doTrend {
		// Product rather than sum of the final level and trend. Unverified
		// against a reference implementation.
		value *= st.trend[len(st.trend)-1]
	}

	z := stats.CDFInverse((1 + p.confidence) / 2)
	out := make([]Point, periods)
	for i := range out {
		width := math.Sqrt(h.variance(x, st.level, i+1, p.alpha, p.beta)) * z
		out[i] = Point{Forecast: value, Low: value - width, High: value + width}
	}

	h.logger.Debug().
		Str("strategy", "holt_winters").
		Int("points", len(x)).
		Float64("alpha", p.alpha).
		Float64("beta", p.beta).
		Float64("sse", st.sse).
		Msg("smoothing complete")
	return out, nil
}

// Forecast smooths the range and projects periodsAhead points past its end.
func (h *HoltWinters) Forecast(periodsAhead int, opts Options) ([]Point, error) {
	if err := checkPeriods(periodsAhead, 0); err != nil {
		return nil, err
	}
	p, err := h.params(opts)
	if err != nil {
		return nil, err
	}

	values := h.series.Values()
	out, err := h.fit(values[p.rng.Start:p.rng.End+1], p, periodsAhead)
	if err != nil {
		return nil, err
	}
	last, _ := h.series.At(p.rng.End)
	h.stampDates(last.Date, out)
	return out, nil
}

// ComparisonForecast walks from the end of the range to the end of the
// series in steps of periodsAhead. Each step refits over the range start up
// to the current index and forecasts the next periodsAhead points, so the
// cost grows quadratically with the length walked. The result is truncated to
// one point per index from the range end onwards.
func (h *HoltWinters) ComparisonForecast(periodsAhead int, opts Options) ([]Point, error) {
	if err := checkPeriods(periodsAhead, 1); err != nil {
		return nil, err
	}
	p, err := h.params(opts)
	if err != nil {
		return nil, err
	}

	values := h.series.Values()
	dates := h.series.Dates()
	n := len(values)
	limit := n - p.rng.End

	out := make([]Point, 0, limit+periodsAhead)
	for idx := p.rng.End; idx < n; idx += periodsAhead {
		next, err := h.fit(values[p.rng.Start:idx+1], p, periodsAhead)
		if err != nil {
			return nil, err
		}
		out = append(out, next...)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	// One tick per point from the range end, so no two points share a date.
	h.stampDates(dates[p.rng.End], out)

	h.logger.Debug().
		Str("strategy", "holt_winters").
		Stringer("range", p.rng).
		Int("points", len(out)).
		Msg("comparison forecast complete")
	return out, nil
}
