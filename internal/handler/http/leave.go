package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/handler/http/middleware"
	"github.com/corehr/hr-backend-go/internal/handler/http/response"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
	leaveservice "github.com/corehr/hr-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateLeaveType(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	UpdateLeaveType(w http.ResponseWriter, r *http.Request)
	DeleteLeaveType(w http.ResponseWriter, r *http.Request)

	CreateLeave(w http.ResponseWriter, r *http.Request)
	GetLeave(w http.ResponseWriter, r *http.Request)
	ListLeaves(w http.ResponseWriter, r *http.Request)
	UpdateLeave(w http.ResponseWriter, r *http.Request)
	DeleteLeave(w http.ResponseWriter, r *http.Request)
	ApproveLeave(w http.ResponseWriter, r *http.Request)
	RejectLeave(w http.ResponseWriter, r *http.Request)
	CancelLeave(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateLeaveType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", created)
}

// ListLeaveTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// UpdateLeaveType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	var leaveType leave.LeaveType
	if err := json.NewDecoder(r.Body).Decode(&leaveType); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	leaveType.ID = chi.URLParam(r, "id")

	if err := h.leaveService.UpdateLeaveType(r.Context(), leaveType); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", leaveType)
}

// DeleteLeaveType implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.leaveService.DeleteLeaveType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// CreateLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// The record belongs to the requester; administrators may file on
	// behalf of another employee.
	if !principal.IsAdmin || req.EmployeeID == "" {
		req.EmployeeID = principal.UserID
	}

	created, err := h.leaveService.CreateLeave(r.Context(), principal, req)
	if err != nil {
		slog.Error("CreateLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// GetLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) GetLeave(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.leaveService.GetLeave(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListLeaves implements LeaveHandler.
func (h *LeaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.LeaveRecordFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if leaveTypeID := r.URL.Query().Get("leave_type_id"); leaveTypeID != "" {
		filter.LeaveTypeID = &leaveTypeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := leave.LeaveStatus(status)
		filter.Status = &s
	}
	if from := r.URL.Query().Get("start_date_from"); from != "" {
		if parsed, ok := validator.IsValidDate(from); ok {
			filter.StartDateGTE = &parsed
		}
	}
	if to := r.URL.Query().Get("end_date_to"); to != "" {
		if parsed, ok := validator.IsValidDate(to); ok {
			filter.EndDateLTE = &parsed
		}
	}

	filter.Page = 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	filter.Limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 && limitNum <= 100 {
			filter.Limit = limitNum
		}
	}
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	records, total, err := h.leaveService.ListLeaves(r.Context(), principal, filter)
	if err != nil {
		slog.Error("ListLeaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.Limit, total))
}

// UpdateLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.leaveService.UpdateLeave(r.Context(), principal, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("UpdateLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", updated)
}

// DeleteLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.DeleteLeave(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

func (h *LeaveHandlerImpl) transition(w http.ResponseWriter, r *http.Request, target leave.LeaveStatus, message string) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.TransitionRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	updated, err := h.leaveService.Transition(r.Context(), principal, chi.URLParam(r, "id"), target, req)
	if err != nil {
		slog.Error("Leave transition error", "target", target, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, updated)
}

// ApproveLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, leave.StatusApproved, "Leave request approved")
}

// RejectLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) RejectLeave(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, leave.StatusRejected, "Leave request rejected")
}

// CancelLeave implements LeaveHandler.
func (h *LeaveHandlerImpl) CancelLeave(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, leave.StatusCancelled, "Leave request cancelled")
}

// calendarWindow resolves the requested window: explicit start_date/end_date
// when both are present, otherwise a year+month pair defaulting to the
// current month.
func calendarWindow(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr != "" || endStr != "" {
		start, ok := validator.IsValidDate(startStr)
		if !ok {
			return time.Time{}, time.Time{}, errors.New("start_date must be in YYYY-MM-DD format")
		}
		end, ok := validator.IsValidDate(endStr)
		if !ok {
			return time.Time{}, time.Time{}, errors.New("end_date must be in YYYY-MM-DD format")
		}
		return start, end, nil
	}

	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 || parsed > 2200 {
			return time.Time{}, time.Time{}, errors.New("year must be a valid four digit year")
		}
		year = parsed
	}
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			return time.Time{}, time.Time{}, errors.New("month must be between 1 and 12")
		}
		month = time.Month(parsed)
	}

	start, end = leaveservice.MonthWindow(year, month)
	return start, end, nil
}

// Calendar implements LeaveHandler.
func (h *LeaveHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	start, end, err := calendarWindow(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	var employeeID *string
	if e := r.URL.Query().Get("employee_id"); e != "" {
		employeeID = &e
	}

	records, err := h.leaveService.Calendar(r.Context(), principal, start, end, employeeID)
	if err != nil {
		slog.Error("Calendar service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
