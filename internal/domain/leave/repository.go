package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	ListByYear(ctx context.Context, year int) ([]LeaveBalance, error)
	// AddPending applies delta to pending_leaves. Negative deltas release the
	// reservation; positive deltas fail when they would push available below zero.
	AddPending(ctx context.Context, balanceID string, delta float64) error
	// MovePendingToUsed atomically shifts days from pending to used.
	MovePendingToUsed(ctx context.Context, balanceID string, days float64) error
	// ReleaseUsed subtracts days from used_leaves (approved leave cancelled).
	ReleaseUsed(ctx context.Context, balanceID string, days float64) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string, filter RequestFilter) ([]LeaveRequest, int64, error)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)
	// UpdateStatus applies the transition recorded on request, guarded by the
	// status the row is expected to hold. Returns ErrAlreadyProcessed when a
	// concurrent transition won the race.
	UpdateStatus(ctx context.Context, request LeaveRequest, from RequestStatus) error
	// HasOverlapping reports whether employeeID has a PENDING or APPROVED
	// request intersecting [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)
}
