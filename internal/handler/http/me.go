package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/response"
)

// MeHandler serves the signed-in user's own records.
type MeHandler interface {
	// GetMe handles GET /me
	GetMe(w http.ResponseWriter, r *http.Request)
	// GetMyHistory handles GET /me/history
	GetMyHistory(w http.ResponseWriter, r *http.Request)
	// ChangePassword handles PUT /me/password
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type meHandlerImpl struct {
	employeeService  employee.EmployeeService
	dashboardService dashboard.DashboardService
}

func NewMeHandler(employeeService employee.EmployeeService, dashboardService dashboard.DashboardService) MeHandler {
	return &meHandlerImpl{
		employeeService:  employeeService,
		dashboardService: dashboardService,
	}
}

type hrProfileResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func employeeIDFromRequest(r *http.Request) (string, error) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return "", auth.ErrInvalidToken
	}
	if principal.EmployeeID == nil {
		return "", auth.ErrForbidden
	}
	return *principal.EmployeeID, nil
}

// GetMe implements MeHandler. HR has no employee record and gets its identity only.
func (h *meHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if principal.Role == auth.RoleHR {
		response.Success(w, hrProfileResponse{Name: principal.Name, Role: string(principal.Role)})
		return
	}

	id, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.GetProfile(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyHistory implements MeHandler
func (h *meHandlerImpl) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	id, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetHistory(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ChangePassword implements MeHandler
func (h *meHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := employeeIDFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.employeeService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed successfully", nil)
}
