package response

import (
	"errors"
	"net/http"

	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/auth"
	"github.com/workstead/hr-backend-go/internal/domain/department"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/notification"
	"github.com/workstead/hr-backend-go/internal/domain/report"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrOAuthEmailTaken):
		Conflict(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrRoleAlreadyAssigned):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrRoleNotAssigned):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, department.ErrDepartmentNotEmpty):
		Conflict(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrUserAlreadyLinked):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrSelfManager):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrOnApprovedLeave):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrLeaveTypeNotFound),
		errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveTypeCodeExists):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrAlreadyProcessed),
		errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrDurationMismatch),
		errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrOwnRequestApproval),
		errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, notification.ErrNoRecipients):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrNoReportData):
		NotFound(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
