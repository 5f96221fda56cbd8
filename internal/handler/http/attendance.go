package http

import (
	"net/http"
	"strconv"

	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/handler/http/middleware"
	"github.com/workstead/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	record, err := a.attendanceService.CheckIn(r.Context(), *employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", record)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	record, err := a.attendanceService.CheckOut(r.Context(), *employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", record)
}

// TodayStatus implements AttendanceHandler.
func (a *AttendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	status, err := a.attendanceService.TodayStatus(r.Context(), *employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetMyAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r)
	if employeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	records, err := a.attendanceService.GetMyAttendance(r.Context(), *employeeID, listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records.Records, &response.Meta{
		Page:       records.Page,
		Limit:      records.Limit,
		TotalItems: records.TotalCount,
		TotalPages: totalPages(records.TotalCount, records.Limit),
	})
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFromQuery(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")
	filter.DepartmentID = r.URL.Query().Get("department_id")

	records, err := a.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records.Records, &response.Meta{
		Page:       records.Page,
		Limit:      records.Limit,
		TotalItems: records.TotalCount,
		TotalPages: totalPages(records.TotalCount, records.Limit),
	})
}

func listFilterFromQuery(r *http.Request) attendance.ListFilter {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return attendance.ListFilter{
		From:  q.Get("from"),
		To:    q.Get("to"),
		Page:  page,
		Limit: limit,
	}
}
