package employee

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionRejectedError(t *testing.T) {
	date := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		action string
		err    error
		target error
		msg    string
		reason string
	}{
		{
			name:   "holiday",
			action: "mark Attendance",
			err:    &HolidayBlockedError{Date: date, Holiday: "Founders Day"},
			target: ErrHolidayBlocked,
			msg:    "cannot mark attendance: action blocked: Founders Day",
			reason: "Cannot mark Attendance: action blocked: Founders Day",
		},
		{
			name:   "same day",
			action: "add Leave",
			err:    &ActionTakenError{Date: date, Existing: RecordAttendance},
			target: ErrActionAlreadyTaken,
			msg:    "cannot add leave: attendance already recorded on 2024-02-05",
			reason: "Cannot add Leave: Attendance marked",
		},
		{
			name:   "quota",
			action: "add Leave",
			err: &QuotaExceededError{
				Used:   decimal.NewFromInt(1),
				Adding: decimal.NewFromFloat(0.5),
				Limit:  decimal.NewFromInt(1),
			},
			target: ErrAuthorizedQuotaExceeded,
			msg:    "cannot add leave: authorized leave quota exceeded: used 1 of 1, adding 0.5",
			reason: "Cannot add Leave: Limit Reached! Used: 1/1. Adding 0.5 exceeds limit.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := error(&ActionRejectedError{Action: tc.action, Err: tc.err})

			assert.ErrorIs(t, err, tc.target)
			assert.Equal(t, tc.msg, err.Error())

			var rejection Rejection
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, tc.reason, rejection.Reason())
		})
	}
}

func TestActionRejectedError_PlainCause(t *testing.T) {
	err := &ActionRejectedError{Action: "add Leave", Err: errors.New("boom")}
	assert.Equal(t, "Cannot add Leave: boom", err.Reason())
}

func TestSentinelErrorsAreLowercase(t *testing.T) {
	assert.Equal(t, "employee with this name already exists", ErrDuplicateName.Error())
	assert.Equal(t, "invalid leave type", ErrInvalidLeaveType.Error())
}
