package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Add implements LeaveHandler.
func (l *LeaveHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var req leave.AddLeaveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("AddLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.AddLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave added", result)
}

// Remove implements LeaveHandler.
func (l *LeaveHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	var req leave.RemoveLeaveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		slog.Error("RemoveLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")
	if req.Type == "" {
		req.Type = r.URL.Query().Get("type")
	}
	if req.Date == "" {
		req.Date = r.URL.Query().Get("date")
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.RemoveLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave removed", result)
}
