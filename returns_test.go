package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/risk/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// series returns a price series of consecutive days starting on 2025-01-01.
func series(ticker string, closes ...float64) *PriceSeries {
	s := &PriceSeries{ticker: ticker}
	for i, c := range closes {
		s.prices.Append(date.New(2025, 1, 1+i), c)
	}
	return s
}

func TestLogReturns(t *testing.T) {
	r, err := LogReturns(series("A", 100, 102, 101, 105))
	if err != nil {
		t.Fatalf("LogReturns() error = %v", err)
	}
	want := []float64{0.019802627, -0.009852296, 0.038839833}
	if diff := cmp.Diff(want, r.Returns(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("LogReturns() mismatch (-want +got):\n%s", diff)
	}
	if r.Ticker() != "A" {
		t.Errorf("LogReturns().Ticker() = %q want %q", r.Ticker(), "A")
	}

	// Returns are dated with the later day of each pair.
	var days []date.Date
	for on := range r.Values() {
		days = append(days, on)
	}
	wantDays := []date.Date{date.New(2025, 1, 2), date.New(2025, 1, 3), date.New(2025, 1, 4)}
	if diff := cmp.Diff(wantDays, days, cmp.Comparer(func(a, b date.Date) bool { return a == b })); diff != "" {
		t.Errorf("LogReturns() days mismatch (-want +got):\n%s", diff)
	}
}

func TestLogReturnsPairs(t *testing.T) {
	for _, pair := range [][2]float64{{1, 2}, {100, 99.5}, {0.001, 1000}, {42, 42}, {1e-300, 1e-299}} {
		r, err := LogReturns(series("A", pair[0], pair[1]))
		if err != nil {
			t.Fatalf("LogReturns(%v) error = %v", pair, err)
		}
		got, want := r.Returns()[0], math.Log(pair[1]/pair[0])
		if got != want {
			t.Errorf("LogReturns(%v) = %v want %v", pair, got, want)
		}
	}
}

func TestLogReturnsRoundTrip(t *testing.T) {
	r, _ := LogReturns(series("A", 100, 137.25, 100))
	sum := 0.0
	for _, v := range r.Returns() {
		sum += v
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("round trip returns sum = %v want 0", sum)
	}
}

func TestLogReturnsLength(t *testing.T) {
	for n := 0; n < 6; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = float64(10 + i)
		}
		r, err := LogReturns(series("A", closes...))
		if err != nil {
			t.Fatalf("LogReturns(%d prices) error = %v", n, err)
		}
		if want := max(n-1, 0); r.Len() != want {
			t.Errorf("LogReturns(%d prices).Len() = %d want %d", n, r.Len(), want)
		}
	}
}

func TestLogReturnsArithmeticError(t *testing.T) {
	testCases := []struct {
		name   string
		closes []float64
	}{
		{"zero close", []float64{100, 0}},
		{"overflow", []float64{1e-300, 1e300}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LogReturns(series("A", tc.closes...))
			var aerr *ArithmeticError
			if !errors.As(err, &aerr) {
				t.Fatalf("LogReturns(%v) error = %v want an *ArithmeticError", tc.closes, err)
			}
			if aerr.Ticker != "A" {
				t.Errorf("ArithmeticError.Ticker = %q want %q", aerr.Ticker, "A")
			}
		})
	}
}
