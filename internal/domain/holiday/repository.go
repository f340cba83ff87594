package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, newHoliday Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// List returns every holiday ordered by date
	List(ctx context.Context) ([]Holiday, error)
}
