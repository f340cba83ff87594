package employee

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrDuplicateName           = errors.New("employee with this name already exists")
	ErrInvalidCategory         = errors.New("category must be Permanent or Trainee")
	ErrInvalidTraineePeriod    = errors.New("invalid trainee period")
	ErrHolidayBlocked          = errors.New("action blocked by holiday")
	ErrActionAlreadyTaken      = errors.New("an action was already recorded for this day")
	ErrAuthorizedQuotaExceeded = errors.New("authorized leave quota exceeded")
	ErrInvalidLeaveType        = errors.New("invalid leave type")
	ErrIncorrectPassword       = errors.New("current password is incorrect")
)

// Rejection is an error carrying the reason shown to HR.
type Rejection interface {
	error
	Reason() string
}

// ActionRejectedError wraps the rule that stopped an attendance or leave action.
type ActionRejectedError struct {
	Action string
	Err    error
}

func (e *ActionRejectedError) Error() string {
	return "cannot " + strings.ToLower(e.Action) + ": " + e.Err.Error()
}

// Reason renders the rejection as "Cannot <Action>: <rule reason>".
func (e *ActionRejectedError) Reason() string {
	reason := e.Err.Error()
	var rejection Rejection
	if errors.As(e.Err, &rejection) {
		reason = rejection.Reason()
	}
	return "Cannot " + e.Action + ": " + reason
}

func (e *ActionRejectedError) Unwrap() error { return e.Err }

// HolidayBlockedError rejects an action on a holiday.
type HolidayBlockedError struct {
	Date    time.Time
	Holiday string
}

func (e *HolidayBlockedError) Error() string {
	return fmt.Sprintf("action blocked: %s", e.Holiday)
}

func (e *HolidayBlockedError) Reason() string { return e.Error() }

func (e *HolidayBlockedError) Unwrap() error { return ErrHolidayBlocked }

// ActionTakenError rejects a second action on a day that already has one.
type ActionTakenError struct {
	Date     time.Time
	Existing RecordKind
}

func (e *ActionTakenError) Error() string {
	return fmt.Sprintf("%s already recorded on %s", e.Existing, e.Date.Format(time.DateOnly))
}

func (e *ActionTakenError) Reason() string { return e.Existing.Label() }

func (e *ActionTakenError) Unwrap() error { return ErrActionAlreadyTaken }

// QuotaExceededError rejects an authorized leave that would exceed the monthly quota.
type QuotaExceededError struct {
	Used   decimal.Decimal
	Adding decimal.Decimal
	Limit  decimal.Decimal
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("authorized leave quota exceeded: used %s of %s, adding %s", e.Used, e.Limit, e.Adding)
}

func (e *QuotaExceededError) Reason() string {
	return fmt.Sprintf("Limit Reached! Used: %s/%s. Adding %s exceeds limit.", e.Used, e.Limit, e.Adding)
}

func (e *QuotaExceededError) Unwrap() error { return ErrAuthorizedQuotaExceeded }
