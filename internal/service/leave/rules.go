package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// AuthorizedMonthlyQuota is the weighted number of authorized leave days per month.
var AuthorizedMonthlyQuota = decimal.NewFromInt(1)

// CheckAdmissible decides whether any attendance or leave action may be
// recorded for emp on date. Holidays are checked first, then the three
// ledgers in attendance, medical, authorized order.
func CheckAdmissible(emp employee.Employee, date time.Time, holidays *calendar.Holidays) error {
	if name, ok := holidays.Lookup(date); ok {
		return &employee.HolidayBlockedError{Date: date, Holiday: name}
	}
	if kind, ok := ExistingAction(emp.Ledger, date); ok {
		return &employee.ActionTakenError{Date: date, Existing: kind}
	}
	return nil
}

// ExistingAction returns the ledger that already holds a record on date's calendar day.
func ExistingAction(ledger employee.Ledger, date time.Time) (employee.RecordKind, bool) {
	for _, kind := range employee.Kinds {
		for _, recorded := range ledger.Records(kind) {
			if calendar.SameDay(recorded, date) {
				return kind, true
			}
		}
	}
	return "", false
}

// AuthorizedUsed sums the weights of the whole authorized ledger. The monthly
// reset keeps that ledger limited to the current month, so no month filter is
// applied here.
func AuthorizedUsed(ledger employee.Ledger) decimal.Decimal {
	return calendar.WeightedSum(ledger.Authorized)
}

// CheckAuthorizedQuota rejects an authorized leave on date when it would take
// the weighted usage past AuthorizedMonthlyQuota.
func CheckAuthorizedQuota(ledger employee.Ledger, date time.Time) error {
	used := AuthorizedUsed(ledger)
	adding := calendar.Weight(date)
	if used.Add(adding).GreaterThan(AuthorizedMonthlyQuota) {
		return &employee.QuotaExceededError{
			Used:   used,
			Adding: adding,
			Limit:  AuthorizedMonthlyQuota,
		}
	}
	return nil
}

// CheckLeave runs every rule for a new leave recorded in the kind ledger on date.
func CheckLeave(emp employee.Employee, kind employee.RecordKind, date time.Time, holidays *calendar.Holidays) error {
	if err := CheckAdmissible(emp, date, holidays); err != nil {
		return err
	}
	if kind == employee.RecordAuthorized {
		return CheckAuthorizedQuota(emp.Ledger, date)
	}
	return nil
}

// ApplyMonthlyReset clears the authorized ledger when it was last reset for a
// month other than now's, and reports whether the ledger changed. Attendance
// and medical records are never touched.
func ApplyMonthlyReset(ledger *employee.Ledger, now time.Time) bool {
	month := calendar.MonthKey(now)
	if ledger.AuthorizedResetMonth == month {
		return false
	}
	ledger.Authorized = []time.Time{}
	ledger.AuthorizedResetMonth = month
	return true
}

// MonthlyMedicalTotals groups non-holiday medical leave by YYYY-MM and sums
// the day weights of each month.
func MonthlyMedicalTotals(medical []time.Time, holidays *calendar.Holidays) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, d := range holidays.Exclude(medical) {
		key := calendar.MonthKey(d)
		totals[key] = totals[key].Add(calendar.Weight(d))
	}
	return totals
}

// CurrentMonthMedical is the weighted medical leave total for now's month.
func CurrentMonthMedical(ledger employee.Ledger, holidays *calendar.Holidays, now time.Time) decimal.Decimal {
	return MonthlyMedicalTotals(ledger.Medical, holidays)[calendar.MonthKey(now)]
}

// AuthorizedUsage is the weighted authorized usage shown to HR, with holiday
// dates left out.
func AuthorizedUsage(ledger employee.Ledger, holidays *calendar.Holidays) decimal.Decimal {
	return calendar.WeightedSum(holidays.Exclude(ledger.Authorized))
}

// PresentToday reports whether attendance was recorded on now's calendar day.
func PresentToday(ledger employee.Ledger, now time.Time) bool {
	for _, d := range ledger.Attendance {
		if calendar.SameDay(d, now) {
			return true
		}
	}
	return false
}
