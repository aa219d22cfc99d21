package date

// Range represents a range of dates.
type Range struct{ From, To Date }

// Lookback returns the range of one period ending on 'end' (included).
//
// For instance the yearly lookback of 2025-06-30 is 2024-07-01 to 2025-06-30.
func Lookback(end Date, p Period) Range {
	return Range{From: p.Start(end), To: end}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// IsZero returns true if neither boundary is set.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// String formats the range as "from..to".
func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
