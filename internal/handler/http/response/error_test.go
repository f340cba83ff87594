package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	date := time.Date(2024, time.February, 6, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "holiday",
			err:     &employee.ActionRejectedError{Action: "mark Attendance", Err: &employee.HolidayBlockedError{Date: date, Holiday: "Founders Day"}},
			status:  http.StatusBadRequest,
			message: "Cannot mark Attendance: action blocked: Founders Day",
		},
		{
			name:    "same day",
			err:     &employee.ActionRejectedError{Action: "add Leave", Err: &employee.ActionTakenError{Date: date, Existing: employee.RecordAttendance}},
			status:  http.StatusBadRequest,
			message: "Cannot add Leave: Attendance marked",
		},
		{
			name: "quota",
			err: fmt.Errorf("tx: %w", &employee.ActionRejectedError{Action: "add Leave", Err: &employee.QuotaExceededError{
				Used: decimal.NewFromInt(1), Adding: decimal.NewFromInt(1), Limit: decimal.NewFromInt(1),
			}}),
			status:  http.StatusBadRequest,
			message: "Cannot add Leave: Limit Reached! Used: 1/1. Adding 1 exceeds limit.",
		},
		{
			name:    "duplicate name",
			err:     fmt.Errorf("create: %w", employee.ErrDuplicateName),
			status:  http.StatusConflict,
			message: "Employee with this name already exists!",
		},
		{
			name:    "invalid leave type",
			err:     employee.ErrInvalidLeaveType,
			status:  http.StatusBadRequest,
			message: "Invalid leave type",
		},
		{
			name:    "holiday exists",
			err:     holiday.ErrHolidayDateExists,
			status:  http.StatusConflict,
			message: "Error adding holiday (Date might exist)",
		},
		{
			name:   "not found",
			err:    employee.ErrEmployeeNotFound,
			status: http.StatusNotFound,
		},
		{
			name:   "forbidden",
			err:    auth.ErrForbidden,
			status: http.StatusForbidden,
		},
		{
			name:   "validation",
			err:    validator.ValidationErrors{{Field: "date", Message: "date is required"}},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			if tc.message != "" {
				assert.Equal(t, tc.message, resp.Message)
			}
		})
	}
}
