package risk

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/risk/date"
)

func raw(on, ticker, price string) RawRecord {
	return RawRecord{Date: on, Ticker: ticker, Close: price}
}

func TestBuildSeries(t *testing.T) {
	u, errs := BuildSeries([]RawRecord{
		raw("2025-01-03", "B", "11"),
		raw("2025-01-02", "A", "100"),
		raw("2025-01-04", "A", "101"),
		raw("2025-01-03", "A", "102"),
		raw("2025-01-02", "B", "10"),
	})
	if len(errs) != 0 {
		t.Fatalf("BuildSeries() errors = %v want none", errs)
	}
	if got, want := u.Tickers(), []string{"A", "B"}; !slices.Equal(got, want) {
		t.Errorf("Tickers() = %v want %v", got, want)
	}
	if got, want := u.Series("A").Closes(), []float64{100, 102, 101}; !slices.Equal(got, want) {
		t.Errorf("Series(A).Closes() = %v want %v", got, want)
	}
	var days []date.Date
	for on := range u.Series("A").Values() {
		days = append(days, on)
	}
	if !slices.IsSortedFunc(days, date.Date.Compare) {
		t.Errorf("Series(A) dates are not sorted: %v", days)
	}
	if u.Series("C") != nil || u.Has("C") {
		t.Errorf("Series(C) should be unknown")
	}
}

func TestBuildSeriesDuplicatesLastWins(t *testing.T) {
	u, _ := BuildSeries([]RawRecord{
		raw("2025-01-02", "A", "100"),
		raw("2025-01-03", "A", "101"),
		raw("2025-01-02", "A", "99"),
	})
	if got, want := u.Series("A").Closes(), []float64{99, 101}; !slices.Equal(got, want) {
		t.Errorf("Series(A).Closes() = %v want %v", got, want)
	}
}

func TestBuildSeriesExcludesInvalidRecords(t *testing.T) {
	u, errs := BuildSeries([]RawRecord{
		raw("2025-01-02", "A", "100"),
		raw("2025-01-03", "A", "-5"),
		raw("2025-01-04", "A", "101"),
		raw("2025-01-02", "Z", "abc"),
		raw("2025-01-02", "", "1"),
	})
	if len(errs) != 3 {
		t.Fatalf("BuildSeries() returned %d errors want 3: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], ErrNonPositiveClose) || !errors.Is(errs[1], ErrInvalidClose) || !errors.Is(errs[2], ErrMissingTicker) {
		t.Errorf("BuildSeries() errors = %v are not in input order", errs)
	}
	if got, want := u.Series("A").Closes(), []float64{100, 101}; !slices.Equal(got, want) {
		t.Errorf("Series(A).Closes() = %v want %v", got, want)
	}
	// Z only had invalid records, it is still known, with no data.
	if got, want := u.Tickers(), []string{"A", "Z"}; !slices.Equal(got, want) {
		t.Errorf("Tickers() = %v want %v", got, want)
	}
	if n := u.Series("Z").Len(); n != 0 {
		t.Errorf("Series(Z).Len() = %d want 0", n)
	}
}

func TestBuildSeriesTickerIdentity(t *testing.T) {
	u, _ := BuildSeries([]RawRecord{
		raw("2025-01-02", "aapl", "1"),
		raw("2025-01-02", "AAPL", "2"),
		raw("2025-01-02", "AAPL ", "3"),
	})
	if u.Len() != 3 {
		t.Errorf("Len() = %d want 3 distinct tickers: %q", u.Len(), u.Tickers())
	}
}

func TestPriceSeriesWithin(t *testing.T) {
	s := NewPriceSeries("A",
		PriceRecord{date.New(2025, 1, 1), "A", 1},
		PriceRecord{date.New(2025, 1, 2), "A", 2},
		PriceRecord{date.New(2025, 1, 3), "A", 3},
		PriceRecord{date.New(2025, 1, 3), "B", 30},
	)
	w := s.Within(date.Range{From: date.New(2025, 1, 2), To: date.New(2025, 1, 3)})
	if got, want := w.Closes(), []float64{2, 3}; !slices.Equal(got, want) {
		t.Errorf("Within().Closes() = %v want %v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Within() modified the original series: Len() = %d want 3", s.Len())
	}
	if got, want := s.Span(), (date.Range{From: date.New(2025, 1, 1), To: date.New(2025, 1, 3)}); got != want {
		t.Errorf("Span() = %v want %v", got, want)
	}
}
