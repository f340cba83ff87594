package leave

import (
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// MedicalAllowancePerMonth is the weighted medical leave a trainee may take in
// a month before the training period is extended.
var MedicalAllowancePerMonth = decimal.NewFromInt(1)

type TraineeProjection struct {
	BaseEndDate time.Time
	EndDate     time.Time
	ExcessLeave decimal.Decimal
	ExtraDays   int
	IsExpired   bool
}

type TraineeCalculator struct {
}

func NewTraineeCalculator() *TraineeCalculator {
	return &TraineeCalculator{}
}

// Project computes the expected completion date of a training period. Each
// month's weighted medical leave above MedicalAllowancePerMonth is summed, and
// the total is rounded up to whole days and appended to the period.
func (c *TraineeCalculator) Project(
	joiningDate time.Time,
	period employee.TraineePeriod,
	medical []time.Time,
	holidays *calendar.Holidays,
	today time.Time,
) TraineeProjection {
	baseEnd := period.AddTo(calendar.StartOfDay(joiningDate))

	excess := decimal.Zero
	for _, total := range MonthlyMedicalTotals(medical, holidays) {
		if total.GreaterThan(MedicalAllowancePerMonth) {
			excess = excess.Add(total.Sub(MedicalAllowancePerMonth))
		}
	}

	extraDays := int(excess.Ceil().IntPart())
	end := baseEnd
	if extraDays > 0 {
		end = end.AddDate(0, 0, extraDays)
	}

	return TraineeProjection{
		BaseEndDate: baseEnd,
		EndDate:     end,
		ExcessLeave: excess,
		ExtraDays:   extraDays,
		IsExpired:   calendar.StartOfDay(today).After(calendar.StartOfDay(end)),
	}
}

// ProjectEmployee projects emp's training period; ok is false for permanent
// staff or trainees without a period.
func (c *TraineeCalculator) ProjectEmployee(emp employee.Employee, holidays *calendar.Holidays, today time.Time) (TraineeProjection, bool) {
	if !emp.IsTrainee() {
		return TraineeProjection{}, false
	}
	joined := emp.JoiningDate
	if joined.IsZero() {
		joined = emp.CreatedAt
	}
	return c.Project(joined, *emp.TraineePeriod, emp.Ledger.Medical, holidays, today), true
}

// StatusResponse maps a projection to its wire form.
func (p TraineeProjection) StatusResponse() *employee.TraineeStatusResponse {
	return &employee.TraineeStatusResponse{
		EndDate:   calendar.FormatDate(p.EndDate),
		ExtraDays: p.ExtraDays,
		IsExpired: p.IsExpired,
	}
}
