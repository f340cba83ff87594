package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

type resetStub struct {
	employee.EmployeeService
	calls int
	err   error
}

func (r *resetStub) ResetAuthorizedLeaves(ctx context.Context) (int64, error) {
	r.calls++
	return 3, r.err
}

func TestLeaveJobs_Register(t *testing.T) {
	s := NewScheduler(context.Background())
	NewLeaveJobs(&resetStub{}, time.Hour).RegisterJobs(s)
	assert.Equal(t, []string{"reset_authorized_leaves"}, s.Jobs())
}

func TestLeaveJobs_ResetAuthorizedLeaves(t *testing.T) {
	stub := &resetStub{}
	jobs := NewLeaveJobs(stub, time.Hour)

	assert.NoError(t, jobs.ResetAuthorizedLeaves(context.Background()))
	assert.Equal(t, 1, stub.calls)

	stub.err = errors.New("db down")
	err := jobs.ResetAuthorizedLeaves(context.Background())
	assert.ErrorIs(t, err, stub.err)
}
