package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
)

type holidayRepositoryImpl struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row rowScanner) (holiday.Holiday, error) {
	var h holiday.Holiday
	var date, createdAt string
	if err := row.Scan(&h.ID, &date, &h.Name, &createdAt); err != nil {
		return holiday.Holiday{}, err
	}

	var err error
	if h.Date, err = calendar.ParseDate(date); err != nil {
		return holiday.Holiday{}, fmt.Errorf("invalid holiday date: %w", err)
	}
	if h.CreatedAt, err = parseTime(createdAt); err != nil {
		return holiday.Holiday{}, fmt.Errorf("invalid created_at: %w", err)
	}
	return h, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, newHoliday holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.ExecContext(ctx,
		`INSERT INTO holidays (id, date, name, created_at) VALUES (?, ?, ?, ?)`,
		newHoliday.ID, calendar.FormatDate(newHoliday.Date), newHoliday.Name, now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	created, err := scanHoliday(q.QueryRowContext(ctx,
		`SELECT id, date, name, created_at FROM holidays WHERE id = ?`, newHoliday.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, err
	}
	return created, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday with id %s: %w", id, err)
	}
	return requireRow(res, holiday.ErrHolidayNotFound)
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT id, date, name, created_at FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return holidays, nil
}
