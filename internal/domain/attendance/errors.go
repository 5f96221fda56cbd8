package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("Attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("Already checked in today")
	ErrAlreadyCheckedOut  = errors.New("Already checked out today")
	ErrNotCheckedIn       = errors.New("No check-in found for today")
	ErrOnApprovedLeave    = errors.New("Cannot check in while on approved leave")
)
