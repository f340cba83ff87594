package holiday

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: holidayRepository}
}

// CreateHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}

	created, err := h.HolidayRepository.Create(ctx, holiday.Holiday{
		ID:   id.String(),
		Date: req.ParsedDate,
		Name: req.Name,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	slog.Info("holiday created", "holiday_id", created.ID, "date", calendar.FormatDate(created.Date), "name", created.Name)
	return holiday.NewHolidayResponse(created), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (h *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return holiday.ErrHolidayNotFound
	}
	if err := h.HolidayRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("holiday deleted", "holiday_id", id)
	return nil
}

// ListHolidays implements holiday.HolidayService.
func (h *HolidayServiceImpl) ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := h.HolidayRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(hd))
	}
	return responses, nil
}

// Calendar implements holiday.HolidayService.
func (h *HolidayServiceImpl) Calendar(ctx context.Context) (*calendar.Holidays, error) {
	holidays, err := h.HolidayRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	cal := calendar.NewHolidays()
	for _, hd := range holidays {
		cal.Add(hd.Date, hd.Name)
	}
	return cal, nil
}
