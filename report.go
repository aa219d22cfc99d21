package risk

import (
	"context"
	"sync"

	"github.com/etnz/risk/date"
)

// Report holds the risk metrics of every ticker of a run.
type Report struct {
	Confidence         float64
	TradingDaysPerYear int
	Span               date.Range    // dates covered by the valid input records
	Rows               []RiskMetrics // one per ticker, sorted by ticker
	Warnings           []error       // *ParseError then *ArithmeticError
}

// NewReport validates and groups the records, then computes the risk metrics of every ticker.
//
// Malformed records and tickers with non finite metrics do not stop the run, they are listed in
// the report warnings. A ticker with an arithmetic error has no row.
//
// Tickers are processed by cfg.Workers goroutines. The context is checked between tickers: if it
// is cancelled, NewReport returns its error.
func NewReport(ctx context.Context, records []RawRecord, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	u, warnings := BuildSeries(records)
	report, err := u.Report(ctx, cfg)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(warnings, report.Warnings...)
	return report, nil
}

// Report computes the risk metrics of every ticker in the universe.
func (u *Universe) Report(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tickers := u.Tickers()
	rows := make([]RiskMetrics, len(tickers))
	errs := make([]error, len(tickers))

	// Each worker writes its own indexes: the order of rows never depends on scheduling.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(cfg.Workers, max(len(tickers), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows[i], errs[i] = cfg.assess(u.Series(tickers[i]))
			}
		}()
	}

	var cancelled error
feed:
	for i := range tickers {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	report := &Report{
		Confidence:         cfg.Confidence,
		TradingDaysPerYear: cfg.TradingDaysPerYear,
		Span:               u.Span(),
		Rows:               make([]RiskMetrics, 0, len(tickers)),
	}
	for i := range tickers {
		if errs[i] != nil {
			report.Warnings = append(report.Warnings, errs[i])
			continue
		}
		report.Rows = append(report.Rows, rows[i])
	}
	return report, nil
}

// assess runs the return and estimation steps on a single series.
func (c Config) assess(s *PriceSeries) (RiskMetrics, error) {
	if c.windowed() {
		s = s.Within(c.window(s.Span()))
	}
	r, err := LogReturns(s)
	if err != nil {
		return RiskMetrics{}, err
	}
	return Estimate(r, c.Options())
}

// Span returns the range of dates covered by all the series.
func (u *Universe) Span() date.Range {
	var span date.Range
	for _, s := range u.list {
		if s.Len() == 0 {
			continue
		}
		r := s.Span()
		if span.From.IsZero() || r.From.Before(span.From) {
			span.From = r.From
		}
		if r.To.After(span.To) {
			span.To = r.To
		}
	}
	return span
}
