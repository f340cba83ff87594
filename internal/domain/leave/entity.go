package leave

import "github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"

type LeaveType string

const (
	LeaveTypeMedical    LeaveType = "medical"
	LeaveTypeAuthorized LeaveType = "authorized"
)

func (t LeaveType) IsValid() bool {
	return t == LeaveTypeMedical || t == LeaveTypeAuthorized
}

// Kind maps the leave type onto its employee ledger.
func (t LeaveType) Kind() employee.RecordKind {
	if t == LeaveTypeAuthorized {
		return employee.RecordAuthorized
	}
	return employee.RecordMedical
}
