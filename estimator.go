package risk

import (
	"fmt"
	"math"
	"slices"

	"github.com/guregu/null/v6"
)

const (
	// DefaultConfidence is the default confidence level of the historical VaR.
	DefaultConfidence = 0.95
	// TradingDaysPerYear is the number of trading days used to annualise daily volatility.
	TradingDaysPerYear = 252
)

// Options holds the estimation parameters, applied uniformly to all tickers of a run.
type Options struct {
	Confidence         float64 // in (0,1)
	TradingDaysPerYear int
}

// DefaultOptions returns the options with a 95% confidence level and 252 trading days per year.
func DefaultOptions() Options {
	return Options{Confidence: DefaultConfidence, TradingDaysPerYear: TradingDaysPerYear}
}

// Validate returns an error if the options cannot be used for an estimation.
func (o Options) Validate() error {
	if !(o.Confidence > 0 && o.Confidence < 1) {
		return fmt.Errorf("confidence level %v must be in (0,1)", o.Confidence)
	}
	if o.TradingDaysPerYear <= 0 {
		return fmt.Errorf("trading days per year %d must be positive", o.TradingDaysPerYear)
	}
	return nil
}

// RiskMetrics holds the risk metrics of a single ticker.
//
// Undefined metrics, because of insufficient data, are invalid null.Float.
type RiskMetrics struct {
	Ticker               string     `json:"ticker"`
	SampleSize           int        `json:"sample_size"`
	AnnualisedVolatility null.Float `json:"annualised_volatility"`
	VaRConfidence        float64    `json:"var_confidence"`
	HistoricalVaR        null.Float `json:"historical_var"`
}

// Estimate computes the risk metrics of a return series.
//
// It fails only on invalid options, or with an *ArithmeticError if a metric is not finite.
// Short series are not an error: metrics that cannot be computed are left undefined.
func Estimate(r *ReturnSeries, opts Options) (RiskMetrics, error) {
	if err := opts.Validate(); err != nil {
		return RiskMetrics{}, err
	}
	returns := r.Returns()
	m := RiskMetrics{
		Ticker:               r.Ticker(),
		SampleSize:           len(returns),
		AnnualisedVolatility: AnnualisedVolatility(returns, opts.TradingDaysPerYear),
		VaRConfidence:        opts.Confidence,
		HistoricalVaR:        HistoricalVaR(returns, opts.Confidence),
	}
	if v := m.AnnualisedVolatility; v.Valid && !isFinite(v.ValueOrZero()) {
		return RiskMetrics{}, &ArithmeticError{Ticker: m.Ticker, Op: "annualised volatility", Value: v.ValueOrZero()}
	}
	if v := m.HistoricalVaR; v.Valid && !isFinite(v.ValueOrZero()) {
		return RiskMetrics{}, &ArithmeticError{Ticker: m.Ticker, Op: "historical VaR", Value: v.ValueOrZero()}
	}
	return m, nil
}

// AnnualisedVolatility returns the unbiased sample standard deviation of the returns scaled by
// sqrt(tradingDays). It is undefined for fewer than two returns.
func AnnualisedVolatility(returns []float64, tradingDays int) null.Float {
	n := len(returns)
	if n < 2 {
		return null.Float{}
	}
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(n)

	var ss float64
	for _, r := range returns {
		d := r - mean
		ss += d * d
	}
	daily := math.Sqrt(ss / float64(n-1))
	return null.FloatFrom(daily * math.Sqrt(float64(tradingDays)))
}

// HistoricalVaR returns the negated empirical (1-confidence)-quantile of the returns.
//
// It is a positive loss magnitude when the quantile is negative, and is reported as computed
// otherwise (it is never clamped to zero). It is undefined for an empty sample.
func HistoricalVaR(returns []float64, confidence float64) null.Float {
	if len(returns) == 0 {
		return null.Float{}
	}
	sorted := slices.Clone(returns)
	slices.Sort(sorted)
	return null.FloatFrom(-Quantile(sorted, 1-confidence))
}

// Quantile returns the p-quantile of an ascending sorted sample, linearly interpolated between
// order statistics: with rank = p*(n-1), it is sorted[lo] + (rank-lo)*(sorted[hi]-sorted[lo])
// where lo and hi are rank rounded down and up.
//
// p is clamped to [0,1]. It returns NaN for an empty sample.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	p = min(max(p, 0), 1)
	rank := p * float64(n-1)
	lo, hi := int(math.Floor(rank)), int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
