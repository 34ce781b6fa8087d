// Package dates parses the calendar dates users type for valuation and
// expiration into UTC midnight values.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrUnrecognized = errors.New("unrecognized date")

// accepted input layouts, tried in order
var layouts = []string{
	Layout,
	"1/2/2006",
	"2006/01/02",
	"20060102",
}

// Parse accepts YYYY-MM-DD, M/D/YYYY (with or without leading zeros),
// YYYY/MM/DD and YYYYMMDD.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD or M/D/YYYY)", ErrUnrecognized, s)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the calendar date of now, as UTC midnight.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
