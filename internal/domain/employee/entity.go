package employee

import (
	"strconv"
	"strings"
	"time"
)

type Employee struct {
	ID            string
	Name          string
	PasswordHash  string
	Position      string
	Category      Category
	TraineePeriod *TraineePeriod
	JoiningDate   time.Time
	Ledger        Ledger
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTrainee reports whether the employee is a trainee with a known period.
func (e Employee) IsTrainee() bool {
	return e.Category == CategoryTrainee && e.TraineePeriod != nil
}

type Category string

const (
	CategoryPermanent Category = "Permanent"
	CategoryTrainee   Category = "Trainee"
)

func (c Category) IsValid() bool {
	return c == CategoryPermanent || c == CategoryTrainee
}

// TraineePeriod is one of the fixed training durations, e.g. "3 Months" or "1 Year".
type TraineePeriod string

// TraineePeriods lists the durations HR can assign.
var TraineePeriods = []TraineePeriod{
	"1 Month", "2 Months", "3 Months", "4 Months", "5 Months", "6 Months", "1 Year",
}

func (p TraineePeriod) IsValid() bool {
	for _, allowed := range TraineePeriods {
		if p == allowed {
			return true
		}
	}
	return false
}

// AddTo returns start advanced by the period. Any "Year" period adds exactly
// one year; the leading number is only read for month periods.
func (p TraineePeriod) AddTo(start time.Time) time.Time {
	s := string(p)
	switch {
	case strings.Contains(s, "Month"):
		fields := strings.Fields(s)
		if len(fields) == 0 {
			return start
		}
		months, err := strconv.Atoi(fields[0])
		if err != nil {
			return start
		}
		return start.AddDate(0, months, 0)
	case strings.Contains(s, "Year"):
		return start.AddDate(1, 0, 0)
	default:
		return start
	}
}

// RecordKind names one of the three day-level ledgers.
type RecordKind string

const (
	RecordAttendance RecordKind = "attendance"
	RecordMedical    RecordKind = "medical"
	RecordAuthorized RecordKind = "authorized"
)

// Label is the human readable description used in rejection reasons.
func (k RecordKind) Label() string {
	switch k {
	case RecordAttendance:
		return "Attendance marked"
	case RecordMedical:
		return "Medical Leave taken"
	case RecordAuthorized:
		return "Authorized Leave taken"
	default:
		return string(k)
	}
}

// Ledger holds the day-level records of one employee. For any calendar day at
// most one of the three slices contains an entry.
type Ledger struct {
	Attendance []time.Time
	Medical    []time.Time
	Authorized []time.Time

	// AuthorizedResetMonth is the YYYY-MM month the authorized ledger was last cleared for.
	AuthorizedResetMonth string
}

// Records returns the slice for kind.
func (l *Ledger) Records(kind RecordKind) []time.Time {
	switch kind {
	case RecordAttendance:
		return l.Attendance
	case RecordMedical:
		return l.Medical
	case RecordAuthorized:
		return l.Authorized
	default:
		return nil
	}
}

// Append adds t to the slice for kind.
func (l *Ledger) Append(kind RecordKind, t time.Time) {
	switch kind {
	case RecordAttendance:
		l.Attendance = append(l.Attendance, t)
	case RecordMedical:
		l.Medical = append(l.Medical, t)
	case RecordAuthorized:
		l.Authorized = append(l.Authorized, t)
	}
}

// Remove drops every entry of kind whose timestamp equals t exactly and
// reports how many were removed.
func (l *Ledger) Remove(kind RecordKind, t time.Time) int {
	var target *[]time.Time
	switch kind {
	case RecordAttendance:
		target = &l.Attendance
	case RecordMedical:
		target = &l.Medical
	case RecordAuthorized:
		target = &l.Authorized
	default:
		return 0
	}

	kept := make([]time.Time, 0, len(*target))
	for _, existing := range *target {
		if !existing.Equal(t) {
			kept = append(kept, existing)
		}
	}
	removed := len(*target) - len(kept)
	*target = kept
	return removed
}

// Kinds lists the ledgers in the order they are checked for same-day conflicts.
var Kinds = []RecordKind{RecordAttendance, RecordMedical, RecordAuthorized}
