// Package calendar holds the calendar-day primitives shared by every leave and
// attendance rule: the same-day predicate, day weighting and holiday lookup.
package calendar

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	mu       sync.RWMutex
	location = time.UTC

	fullDay = decimal.NewFromInt(1)
	halfDay = decimal.NewFromFloat(0.5)
)

// SetLocation sets the location in which calendar days are evaluated.
func SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	location = loc
}

// Location returns the location in which calendar days are evaluated.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	loc := Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return MonthKey(a) == MonthKey(b)
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	loc := Location()
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfMonth returns midnight of the first day of t's calendar month.
func StartOfMonth(t time.Time) time.Time {
	loc := Location()
	y, m, _ := t.In(loc).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, loc)
}

// MonthKey formats t's calendar month as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.In(Location()).Format(MonthLayout)
}

// FormatDate formats t's calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in the calendar location.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location())
}

// ParseMonth parses a YYYY-MM string as the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, s, Location())
}

// Stamp normalizes a timestamp before it is stored in a ledger. Postgres keeps
// microseconds, so anything finer would break exact-match deletion.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// IsSaturday reports whether t falls on a Saturday.
func IsSaturday(t time.Time) bool {
	return t.In(Location()).Weekday() == time.Saturday
}

// Weight is the leave weight of t's calendar day: half a day on Saturday, a
// full day otherwise. Holidays are not considered here.
func Weight(t time.Time) decimal.Decimal {
	if IsSaturday(t) {
		return halfDay
	}
	return fullDay
}

// WeightedSum sums Weight over dates.
func WeightedSum(dates []time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, d := range dates {
		total = total.Add(Weight(d))
	}
	return total
}
