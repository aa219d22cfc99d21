package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/risk/date"
	"github.com/shopspring/decimal"
)

// RawRecord is a single price observation as read from the source, before any validation.
type RawRecord struct {
	Line   int // 1-based line in the source, 0 if unknown.
	Date   string
	Ticker string
	Close  string
}

// PriceRecord is a validated price observation.
type PriceRecord struct {
	Date   date.Date
	Ticker string
	Close  float64 // always positive and finite
}

// ParseRecord validates a raw record.
//
// Date and Close are trimmed before parsing, the ticker is kept verbatim: ticker identity is an
// exact string match. The returned error is always a *ParseError.
func ParseRecord(r RawRecord) (PriceRecord, error) {
	fail := func(value string, err error) (PriceRecord, error) {
		return PriceRecord{}, &ParseError{Line: r.Line, Ticker: r.Ticker, Date: r.Date, Value: value, Err: err}
	}

	if r.Ticker == "" {
		return fail(r.Ticker, ErrMissingTicker)
	}

	on, err := date.Parse(strings.TrimSpace(r.Date))
	if err != nil {
		return fail(r.Date, fmt.Errorf("%w: %w", ErrInvalidDate, err))
	}

	// decimal parsing is strict: it rejects "NaN", "Inf" and the like.
	d, err := decimal.NewFromString(strings.TrimSpace(r.Close))
	if err != nil {
		return fail(r.Close, fmt.Errorf("%w: %w", ErrInvalidClose, err))
	}
	if !d.IsPositive() {
		return fail(r.Close, ErrNonPositiveClose)
	}
	price := d.InexactFloat64()
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return fail(r.Close, fmt.Errorf("%w: not representable as a finite number", ErrInvalidClose))
	}
	if price == 0 {
		// underflow of a tiny positive decimal
		return fail(r.Close, ErrNonPositiveClose)
	}

	return PriceRecord{Date: on, Ticker: r.Ticker, Close: price}, nil
}
