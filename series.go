package risk

import (
	"iter"
	"slices"
	"strings"

	"github.com/etnz/risk/date"
)

// PriceSeries is the chronological series of closing prices for a single ticker.
//
// Dates are unique and strictly increasing. A PriceSeries is never modified once built,
// cleaning operations return a new series.
type PriceSeries struct {
	ticker string
	prices date.History[float64]
}

// NewPriceSeries returns a series for 'ticker' from a list of records.
//
// Records for other tickers are ignored. When two records share the same date, the last one wins.
func NewPriceSeries(ticker string, records ...PriceRecord) *PriceSeries {
	s := &PriceSeries{ticker: ticker}
	for _, r := range records {
		if r.Ticker == ticker {
			s.prices.Append(r.Date, r.Close)
		}
	}
	return s
}

// Ticker returns the series ticker.
func (s *PriceSeries) Ticker() string { return s.ticker }

// Len returns the number of observations.
func (s *PriceSeries) Len() int { return s.prices.Len() }

// Values returns an iterator over (date, close) in chronological order.
func (s *PriceSeries) Values() iter.Seq2[date.Date, float64] { return s.prices.Values() }

// Closes returns a copy of the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 { return s.prices.Slice() }

// Span returns the range of dates covered by the series. It is zero for an empty series.
func (s *PriceSeries) Span() date.Range {
	from, _ := s.prices.First()
	to, _ := s.prices.Latest()
	return date.Range{From: from, To: to}
}

// Within returns a new series restricted to the observations in r.
func (s *PriceSeries) Within(r date.Range) *PriceSeries {
	return &PriceSeries{ticker: s.ticker, prices: *s.prices.Within(r)}
}

// Universe holds the price series of a set of tickers.
type Universe struct {
	list  []*PriceSeries // sorted by ticker
	index map[string]*PriceSeries
}

// add returns the series for 'ticker', creating it if needed.
func (u *Universe) add(ticker string) *PriceSeries {
	if s, ok := u.index[ticker]; ok {
		return s
	}
	s := &PriceSeries{ticker: ticker}
	u.index[ticker] = s
	u.list = append(u.list, s)
	return s
}

// Len returns the number of tickers.
func (u *Universe) Len() int { return len(u.list) }

// Has returns true if the ticker is part of the universe.
func (u *Universe) Has(ticker string) bool {
	_, ok := u.index[ticker]
	return ok
}

// Series returns the price series of 'ticker', or nil if it is unknown.
func (u *Universe) Series(ticker string) *PriceSeries { return u.index[ticker] }

// Tickers returns the tickers in alphabetical order.
func (u *Universe) Tickers() []string {
	tickers := make([]string, len(u.list))
	for i, s := range u.list {
		tickers[i] = s.ticker
	}
	return tickers
}

// BuildSeries groups raw records into one chronologically ordered series per ticker.
//
// Every record is validated with [ParseRecord]. Invalid records are excluded and reported as
// *ParseError in the returned list, in input order; they never stop the processing of others.
// A ticker whose records are all invalid still belongs to the universe, with an empty series.
//
// When several records share the same (ticker, date), the last one in input order wins.
func BuildSeries(records []RawRecord) (*Universe, []error) {
	u := &Universe{index: make(map[string]*PriceSeries)}
	var errs []error
	for _, raw := range records {
		r, err := ParseRecord(raw)
		if err != nil {
			errs = append(errs, err)
			if raw.Ticker != "" {
				u.add(raw.Ticker)
			}
			continue
		}
		u.add(r.Ticker).prices.Append(r.Date, r.Close)
	}
	slices.SortFunc(u.list, func(a, b *PriceSeries) int { return strings.Compare(a.ticker, b.ticker) })
	return u, errs
}
