package date

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is the length of a lookback window, in calendar days, months and years.
type Period struct {
	years, months, days int
}

// Common lookback periods.
var (
	Week    = Period{days: 7}
	Month   = Period{months: 1}
	Quarter = Period{months: 3}
	Year    = Period{years: 1}
)

// String formats the period as a count and a unit, e.g. "3m".
func (p Period) String() string {
	switch {
	case p.years > 0:
		return strconv.Itoa(p.years) + "y"
	case p.months > 0:
		return strconv.Itoa(p.months) + "m"
	case p.days%7 == 0:
		return strconv.Itoa(p.days/7) + "w"
	default:
		return strconv.Itoa(p.days) + "d"
	}
}

// Start returns the first day of the period ending on 'end' (included).
func (p Period) Start(end Date) Date {
	return end.AddDate(-p.years, -p.months, -p.days).Add(1)
}

// ParsePeriod parses a period name (week, month, quarter, year) or a count and a unit among
// d, w, m and y, like "90d" or "3y".
//
// A single day is rejected: it holds at most one close, hence no return.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "quarter", "quarterly":
		return Quarter, nil
	case "year", "yearly":
		return Year, nil
	}

	if len(s) < 2 {
		return Period{}, fmt.Errorf("unknown period %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return Period{}, fmt.Errorf("unknown period %q", s)
	}
	switch s[len(s)-1] {
	case 'd':
		if n < 2 {
			return Period{}, fmt.Errorf("period %q is too short to hold a return", s)
		}
		return Period{days: n}, nil
	case 'w':
		return Period{days: 7 * n}, nil
	case 'm':
		return Period{months: n}, nil
	case 'y':
		return Period{years: n}, nil
	}
	return Period{}, fmt.Errorf("unknown period %q", s)
}
