package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/handler/http/middleware"
	"github.com/workstead/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService     leave.LeaveService
	leaveTypeService leave.LeaveTypeService
}

func NewLeaveHandler(leaveService leave.LeaveService, leaveTypeService leave.LeaveTypeService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService:     leaveService,
		leaveTypeService: leaveTypeService,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := l.leaveTypeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	types, err := l.leaveTypeService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeaveType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	leaveType, err := l.leaveTypeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated", leaveType)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveTypeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted", nil)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = *employeeID

	request, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", request)
}

// GetRequest implements LeaveHandler. Regular employees can only see their
// own requests.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := l.leaveService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	role := middleware.Role(r)
	if role == user.RoleEmployee {
		employeeID := middleware.EmployeeID(r)
		if employeeID == nil || *employeeID != request.EmployeeID {
			response.HandleError(w, leave.ErrNotRequestOwner)
			return
		}
	}

	response.Success(w, request)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	requests, err := l.leaveService.GetMyRequests(r.Context(), *employeeID, requestFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests.Requests, &response.Meta{
		Page:       requests.Page,
		Limit:      requests.Limit,
		TotalItems: requests.TotalCount,
		TotalPages: totalPages(requests.TotalCount, requests.Limit),
	})
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := requestFilterFromQuery(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")
	filter.DepartmentID = r.URL.Query().Get("department_id")

	requests, err := l.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests.Requests, &response.Meta{
		Page:       requests.Page,
		Limit:      requests.Limit,
		TotalItems: requests.TotalCount,
		TotalPages: totalPages(requests.TotalCount, requests.Limit),
	})
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	request, err := l.leaveService.Approve(r.Context(), chi.URLParam(r, "id"),
		middleware.UserID(r), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", request)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	request, err := l.leaveService.Reject(r.Context(), req,
		middleware.UserID(r), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", request)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	role := middleware.Role(r)
	isPrivileged := role == user.RoleAdmin || role == user.RoleManager

	request, err := l.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"),
		middleware.UserID(r), middleware.EmployeeID(r), isPrivileged)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", request)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	balances, err := l.leaveService.GetMyBalances(r.Context(), *employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	balances, err := l.leaveService.GetBalances(r.Context(), chi.URLParam(r, "employeeID"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

func requestFilterFromQuery(r *http.Request) leave.RequestFilter {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return leave.RequestFilter{
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
	}
}
