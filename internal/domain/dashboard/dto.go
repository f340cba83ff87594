package dashboard

import "github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"

// ========== HR DASHBOARD ==========

// DashboardResponse lists every employee with today's status, expired trainees first
type DashboardResponse struct {
	Date            string                   `json:"date"`
	TotalEmployees  int                      `json:"total_employees"`
	PresentToday    int                      `json:"present_today"`
	ExpiredTrainees int                      `json:"expired_trainees"`
	Employees       []EmployeeStatusResponse `json:"employees"`
}

type EmployeeStatusResponse struct {
	ID                  string                          `json:"id"`
	Name                string                          `json:"name"`
	Position            string                          `json:"position"`
	Category            string                          `json:"category"`
	TraineePeriod       *string                         `json:"trainee_period,omitempty"`
	Trainee             *employee.TraineeStatusResponse `json:"trainee,omitempty"`
	IsExpired           bool                            `json:"is_expired"`
	PresentToday        bool                            `json:"present_today"`
	CurrentMonthMedical string                          `json:"current_month_medical"`
	AuthorizedUsed      string                          `json:"authorized_used"`
	AuthorizedLimit     string                          `json:"authorized_limit"`
}

// ========== HISTORY ==========

// HistoryResponse is an employee's attendance by month and leave history, newest first
type HistoryResponse struct {
	EmployeeID string                    `json:"employee_id"`
	Name       string                    `json:"name"`
	Attendance []AttendanceMonthResponse `json:"attendance"`
	Leaves     []LeaveHistoryEntry       `json:"leaves"`
}

type AttendanceMonthResponse struct {
	Month   string                `json:"month"` // Format: "YYYY-MM"
	Count   int                   `json:"count"`
	Records []AttendanceDayRecord `json:"records"`
}

type AttendanceDayRecord struct {
	Date      string `json:"date"`      // Format: "YYYY-MM-DD"
	Timestamp string `json:"timestamp"` // exact stored value, used for deletion
}

type LeaveHistoryEntry struct {
	Type      string `json:"type"` // medical | authorized
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
	Weight    string `json:"weight"`
}
