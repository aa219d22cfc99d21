package risk

import (
	"errors"
	"fmt"
)

// Reasons for a record to be rejected. They are wrapped in a *ParseError.
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidClose     = errors.New("invalid close")
	ErrNonPositiveClose = errors.New("close must be positive")
	ErrMissingTicker    = errors.New("missing ticker")
)

// ParseError reports a price record that has been excluded from its ticker series.
type ParseError struct {
	Line   int    // Line in the source, 0 if unknown.
	Ticker string // Ticker as read.
	Date   string // Date as read.
	Value  string // Raw offending value.
	Err    error  // One of the Err* reasons, possibly wrapping the underlying cause.
}

func (e *ParseError) Error() string {
	prefix := ""
	if e.Line > 0 {
		prefix = fmt.Sprintf("line %d: ", e.Line)
	}
	return fmt.Sprintf("%sticker %q on %q: %q: %v", prefix, e.Ticker, e.Date, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ArithmeticError reports a computation that produced a non representable result for a ticker.
// The ticker is skipped from the report.
type ArithmeticError struct {
	Ticker string
	Op     string // operation that failed, e.g. "log return on 2025-01-02"
	Value  float64
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("ticker %q: %s: non finite result %v", e.Ticker, e.Op, e.Value)
}
