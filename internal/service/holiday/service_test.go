package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) holiday.HolidayService {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return NewHolidayService(sqlite.NewHolidayRepository(db))
}

func TestCreateHoliday(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Date: "2024-12-25", Name: " Christmas "})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25", created.Date)
	assert.Equal(t, "Christmas", created.Name)

	_, err = svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Date: "2024-12-25", Name: "Again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	_, err = svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Date: "25/12/2024", Name: "Christmas"})
	assert.Error(t, err)
}

func TestCalendar(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Date: "2024-02-04", Name: "Independence Day"})
	require.NoError(t, err)

	cal, err := svc.Calendar(ctx)
	require.NoError(t, err)

	name, ok := cal.Lookup(time.Date(2024, time.February, 4, 18, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "Independence Day", name)
	assert.False(t, cal.IsHoliday(time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC)))
}

func TestDeleteHoliday(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateHoliday(ctx, holiday.CreateHolidayRequest{Date: "2024-05-01", Name: "Labour Day"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHoliday(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteHoliday(ctx, created.ID), holiday.ErrHolidayNotFound)
	assert.ErrorIs(t, svc.DeleteHoliday(ctx, "bad-id"), holiday.ErrHolidayNotFound)

	list, err := svc.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
