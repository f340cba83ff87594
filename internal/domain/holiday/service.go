package holiday

import (
	"context"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
)

type HolidayService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)

	// Calendar loads the current holiday set for rule evaluation
	Calendar(ctx context.Context) (*calendar.Holidays, error)
}
