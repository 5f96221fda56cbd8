package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID                 string
	Name               string
	Code               string
	Description        *string
	DefaultAnnualQuota float64
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LeaveBalance holds the per-employee, per-type, per-year counters.
// available = allocated + carried_forward - used - pending, never negative.
type LeaveBalance struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	Allocated      float64
	CarriedForward float64
	Used           float64
	Pending        float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	LeaveTypeCode *string
}

// Available returns the balance still open to new requests.
func (b LeaveBalance) Available() float64 {
	return b.Allocated + b.CarriedForward - b.Used - b.Pending
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// LeaveRequest entity. Status transitions: PENDING -> {APPROVED, REJECTED,
// CANCELLED}; APPROVED -> CANCELLED. Everything else is rejected.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	Duration  float64

	Reason string

	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CancelledBy *string
	CancelledAt *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName  *string
	LeaveTypeName *string
}

// CanTransitionTo reports whether the status change is allowed.
func (r LeaveRequest) CanTransitionTo(next RequestStatus) bool {
	switch r.Status {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusCancelled
	}
	return false
}

// DurationDays returns the inclusive calendar-day span of [start, end].
func DurationDays(start, end time.Time) float64 {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	return float64(int(end.Sub(start).Hours()/24) + 1)
}
