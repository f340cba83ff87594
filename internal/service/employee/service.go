package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/service/leave"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	txManager database.TxManager
	employee.EmployeeRepository
	holidayService    holiday.HolidayService
	traineeCalculator *leave.TraineeCalculator

	hrUsername      string
	defaultPassword string
	passwordCost    int
	now             func() time.Time
}

func NewEmployeeService(
	txManager database.TxManager,
	employeeRepository employee.EmployeeRepository,
	holidayService holiday.HolidayService,
	hrUsername string,
	defaultPassword string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		txManager:          txManager,
		EmployeeRepository: employeeRepository,
		holidayService:     holidayService,
		traineeCalculator:  leave.NewTraineeCalculator(),
		hrUsername:         hrUsername,
		defaultPassword:    defaultPassword,
		passwordCost:       bcrypt.DefaultCost,
		now:                time.Now,
	}
}

func (s *EmployeeServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ensureNameAvailable rejects names already in use, including the HR login name.
func (s *EmployeeServiceImpl) ensureNameAvailable(ctx context.Context, name string, excludeID string) error {
	if strings.EqualFold(name, s.hrUsername) {
		return employee.ErrDuplicateName
	}
	exists, err := s.EmployeeRepository.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return employee.ErrDuplicateName
	}
	return nil
}

// view applies the monthly reset to a copy of emp for display.
func (s *EmployeeServiceImpl) view(emp employee.Employee) employee.Employee {
	leave.ApplyMonthlyReset(&emp.Ledger, s.now())
	return emp
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.ensureNameAvailable(ctx, req.Name, ""); err != nil {
		return employee.EmployeeResponse{}, err
	}

	password := s.defaultPassword
	if req.Password != nil && *req.Password != "" {
		password = *req.Password
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	now := s.now()
	joiningDate := now
	if req.ParsedJoiningDate != nil {
		joiningDate = *req.ParsedJoiningDate
	}

	newEmployee := employee.Employee{
		ID:           id.String(),
		Name:         req.Name,
		PasswordHash: hash,
		Position:     strings.TrimSpace(req.Position),
		Category:     employee.Category(req.Category),
		JoiningDate:  calendar.Stamp(joiningDate),
		Ledger: employee.Ledger{
			Attendance:           []time.Time{},
			Medical:              []time.Time{},
			Authorized:           []time.Time{},
			AuthorizedResetMonth: calendar.MonthKey(now),
		},
	}
	if newEmployee.Category == employee.CategoryTrainee {
		period := employee.TraineePeriod(*req.TraineePeriod)
		newEmployee.TraineePeriod = &period
	}

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "category", created.Category)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(s.view(emp)), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.responses(employees), nil
}

// SearchEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SearchEmployees(ctx context.Context, req employee.SearchEmployeeRequest) ([]employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.Search(ctx, strings.TrimSpace(req.Query))
	if err != nil {
		return nil, err
	}
	return s.responses(employees), nil
}

func (s *EmployeeServiceImpl) responses(employees []employee.Employee) []employee.EmployeeResponse {
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, employee.NewEmployeeResponse(s.view(emp)))
	}
	return out
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !validator.IsValidUUID(req.ID) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	var passwordHash string
	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		passwordHash = hash
	}

	var updated employee.Employee
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.EmployeeRepository.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != emp.Name {
			if err := s.ensureNameAvailable(txCtx, *req.Name, emp.ID); err != nil {
				return err
			}
			emp.Name = *req.Name
		}
		if req.Position != nil {
			emp.Position = strings.TrimSpace(*req.Position)
		}
		if req.Category != nil {
			emp.Category = employee.Category(*req.Category)
		}
		if req.TraineePeriod != nil && *req.TraineePeriod != "" {
			period := employee.TraineePeriod(*req.TraineePeriod)
			emp.TraineePeriod = &period
		}
		if req.ParsedJoiningDate != nil {
			emp.JoiningDate = calendar.Stamp(*req.ParsedJoiningDate)
		}

		switch emp.Category {
		case employee.CategoryPermanent:
			emp.TraineePeriod = nil
		case employee.CategoryTrainee:
			if emp.TraineePeriod == nil {
				return validator.ValidationErrors{{
					Field:   "trainee_period",
					Message: "trainee_period is required for trainees",
				}}
			}
		}

		if err := s.EmployeeRepository.Update(txCtx, emp); err != nil {
			return err
		}
		if passwordHash != "" {
			if err := s.EmployeeRepository.UpdatePassword(txCtx, emp.ID, passwordHash); err != nil {
				return err
			}
			emp.PasswordHash = passwordHash
		}

		updated = emp
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee updated", "employee_id", updated.ID)
	return employee.NewEmployeeResponse(s.view(updated)), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("employee deleted", "employee_id", id)
	return nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, id string) (employee.ProfileResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.ProfileResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	holidays, err := s.holidayService.Calendar(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	now := s.now()
	emp = s.view(emp)

	profile := employee.ProfileResponse{
		Employee:            employee.NewEmployeeResponse(emp),
		CurrentMonthMedical: leave.CurrentMonthMedical(emp.Ledger, holidays, now).String(),
		TotalMedical:        len(holidays.Exclude(emp.Ledger.Medical)),
	}
	if proj, ok := s.traineeCalculator.ProjectEmployee(emp, holidays, now); ok {
		profile.Trainee = proj.StatusResponse()
	}
	return profile, nil
}

// ChangePassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ChangePassword(ctx context.Context, req employee.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return employee.ErrEmployeeNotFound
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return employee.ErrIncorrectPassword
	}

	hash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.EmployeeRepository.UpdatePassword(ctx, emp.ID, hash); err != nil {
		return err
	}

	slog.Info("employee password changed", "employee_id", emp.ID)
	return nil
}

// ResetAuthorizedLeaves implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ResetAuthorizedLeaves(ctx context.Context) (int64, error) {
	month := calendar.MonthKey(s.now())
	n, err := s.EmployeeRepository.ResetAuthorizedLeaves(ctx, month)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("authorized leaves reset", "month", month, "employees", n)
	}
	return n, nil
}
