package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
)

// Holidays answers holiday lookups for a set of dated, non-recurring holidays.
type Holidays struct {
	cal cal.Calendar
}

// NewHolidays returns an empty holiday set.
func NewHolidays() *Holidays {
	return &Holidays{}
}

// Add registers a one-off holiday on date's calendar day.
func (h *Holidays) Add(date time.Time, name string) {
	y, m, d := date.In(Location()).Date()
	h.cal.AddHoliday(&cal.Holiday{
		Name:      name,
		Month:     m,
		Day:       d,
		StartYear: y,
		EndYear:   y,
		Func:      cal.CalcDayOfMonth,
	})
}

// Lookup returns the name of the holiday falling on t's calendar day.
func (h *Holidays) Lookup(t time.Time) (string, bool) {
	if h == nil {
		return "", false
	}
	actual, _, hol := h.cal.IsHoliday(t.In(Location()))
	if !actual || hol == nil {
		return "", false
	}
	return hol.Name, true
}

// IsHoliday reports whether t's calendar day is a holiday.
func (h *Holidays) IsHoliday(t time.Time) bool {
	_, ok := h.Lookup(t)
	return ok
}

// Exclude returns the dates that are not holidays, preserving order.
func (h *Holidays) Exclude(dates []time.Time) []time.Time {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if !h.IsHoliday(d) {
			out = append(out, d)
		}
	}
	return out
}
