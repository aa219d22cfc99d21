package risk

import (
	"fmt"
	"iter"
	"math"

	"github.com/etnz/risk/date"
)

// ReturnSeries is the chronological series of daily log returns for a single ticker.
//
// Each return is dated with the later of the two days it spans.
type ReturnSeries struct {
	ticker  string
	returns date.History[float64]
}

// Ticker returns the series ticker.
func (r *ReturnSeries) Ticker() string { return r.ticker }

// Len returns the number of returns.
func (r *ReturnSeries) Len() int { return r.returns.Len() }

// Values returns an iterator over (date, return) in chronological order.
func (r *ReturnSeries) Values() iter.Seq2[date.Date, float64] { return r.returns.Values() }

// Returns returns a copy of the returns in chronological order.
func (r *ReturnSeries) Returns() []float64 { return r.returns.Slice() }

// LogReturns computes the continuously compounded daily returns ln(p[i+1]/p[i]) of a series.
//
// A series with fewer than two observations gives an empty ReturnSeries.
// A non finite return (a zero close, or an overflowing ratio) is reported as an *ArithmeticError.
func LogReturns(s *PriceSeries) (*ReturnSeries, error) {
	r := &ReturnSeries{ticker: s.Ticker()}
	prev := math.NaN()
	first := true
	for on, price := range s.Values() {
		if first {
			prev, first = price, false
			continue
		}
		ret := math.Log(price / prev)
		if math.IsNaN(ret) || math.IsInf(ret, 0) {
			return nil, &ArithmeticError{Ticker: s.Ticker(), Op: fmt.Sprintf("log return on %s", on), Value: ret}
		}
		r.returns.Append(on, ret)
		prev = price
	}
	return r, nil
}
