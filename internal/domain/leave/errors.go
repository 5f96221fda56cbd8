package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrLeaveTypeNotFound    = errors.New("Leave type not found")
	ErrLeaveTypeCodeExists  = errors.New("Leave type code already exists")
	ErrLeaveTypeInactive    = errors.New("Leave type is inactive")
	ErrBalanceNotFound      = errors.New("Leave balance not found")
	ErrInsufficientBalance  = errors.New("Insufficient leave balance")
	ErrAlreadyProcessed     = errors.New("Leave request already processed")
	ErrOverlappingLeave     = errors.New("Overlapping leave request exists")
	ErrInvalidDateRange     = errors.New("End date must not be before start date")
	ErrDurationMismatch     = errors.New("Duration does not match the date range")
	ErrOwnRequestApproval   = errors.New("Cannot approve or reject own leave request")
	ErrNotRequestOwner      = errors.New("Leave request belongs to another employee")
)
