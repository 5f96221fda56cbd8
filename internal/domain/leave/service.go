package leave

import "context"

// LeaveTypeService - interface for leave type administration
type LeaveTypeService interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

// LeaveService - interface for the leave request lifecycle
type LeaveService interface {
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	GetMyRequests(ctx context.Context, employeeID string, filter RequestFilter) (ListLeaveRequestResponse, error)
	List(ctx context.Context, filter RequestFilter) (ListLeaveRequestResponse, error)

	Approve(ctx context.Context, requestID string, approverUserID string, approverEmployeeID *string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req RejectRequestRequest, approverUserID string, approverEmployeeID *string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, requestID string, actorUserID string, actorEmployeeID *string, isPrivileged bool) (LeaveRequestResponse, error)

	GetMyBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
	GetBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
}
