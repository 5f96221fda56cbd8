package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/notification"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	transactor database.Transactor
	requests   leave.LeaveRequestRepository
	balances   leave.LeaveBalanceRepository
	types      leave.LeaveTypeRepository
	attendance attendance.AttendanceRepository
	employees  employee.EmployeeRepository
	notifier   notification.Repository

	now func() time.Time
}

func NewLeaveService(
	transactor database.Transactor,
	requestRepository leave.LeaveRequestRepository,
	balanceRepository leave.LeaveBalanceRepository,
	typeRepository leave.LeaveTypeRepository,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	notificationRepository notification.Repository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		transactor: transactor,
		requests:   requestRepository,
		balances:   balanceRepository,
		types:      typeRepository,
		attendance: attendanceRepository,
		employees:  employeeRepository,
		notifier:   notificationRepository,
		now:        time.Now,
	}
}

// Submit implements leave.LeaveService. The requested days are reserved as
// pending in the same transaction that creates the request, so two
// overlapping submissions cannot both pass the balance check.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	duration := leave.DurationDays(start, end)
	if req.Duration != nil && *req.Duration != duration {
		return leave.LeaveRequestResponse{}, leave.ErrDurationMismatch
	}

	leaveType, err := s.types.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	overlapping, err := s.requests.HasOverlapping(ctx, req.EmployeeID, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var created leave.LeaveRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.balances.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, start.Year())
		if errors.Is(err, leave.ErrBalanceNotFound) {
			// First request against this type and year seeds the balance
			// row from the type's default quota.
			balance, err = s.balances.Create(ctx, leave.LeaveBalance{
				EmployeeID:  req.EmployeeID,
				LeaveTypeID: req.LeaveTypeID,
				Year:        start.Year(),
				Allocated:   leaveType.DefaultAnnualQuota,
			})
		}
		if err != nil {
			return err
		}

		if err := s.balances.AddPending(ctx, balance.ID, duration); err != nil {
			return err
		}

		created, err = s.requests.Create(ctx, leave.LeaveRequest{
			EmployeeID:  req.EmployeeID,
			LeaveTypeID: req.LeaveTypeID,
			StartDate:   start,
			EndDate:     end,
			Duration:    duration,
			Reason:      req.Reason,
			Status:      leave.StatusPending,
		})
		if err != nil {
			return err
		}

		return s.notifyManager(ctx, emp, notification.TypeLeaveRequest,
			"New leave request",
			fmt.Sprintf("%s requested %s leave from %s to %s",
				derefOr(emp.Name, emp.EmployeeCode), leaveType.Name, req.StartDate, req.EndDate))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.EmployeeName = emp.Name
	created.LeaveTypeName = &leaveType.Name
	return leave.ToRequestResponse(created), nil
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToRequestResponse(request), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, employeeID string, filter leave.RequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.EmployeeID = employeeID
	filter.DepartmentID = ""
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.RequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	resp := leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   make([]leave.LeaveRequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, leave.ToRequestResponse(r))
	}
	return resp, nil
}

// Approve implements leave.LeaveService. Approval moves the reservation from
// pending to used and stamps every day of the range as LEAVE, all in one
// transaction.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string, approverUserID string, approverEmployeeID *string) (leave.LeaveRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if approverEmployeeID != nil && *approverEmployeeID == request.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrOwnRequestApproval
	}
	if !request.CanTransitionTo(leave.StatusApproved) {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	now := s.now()
	request.Status = leave.StatusApproved
	request.ApprovedBy = &approverUserID
	request.ApprovedAt = &now

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requests.UpdateStatus(ctx, request, leave.StatusPending); err != nil {
			return err
		}

		balance, err := s.balances.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			return err
		}
		if err := s.balances.MovePendingToUsed(ctx, balance.ID, request.Duration); err != nil {
			return err
		}

		for d := request.StartDate; !d.After(request.EndDate); d = d.AddDate(0, 0, 1) {
			if err := s.attendance.UpsertLeaveDay(ctx, request.EmployeeID, d, request.ID); err != nil {
				return err
			}
		}

		return s.notifyEmployee(ctx, request.EmployeeID, &approverUserID, notification.TypeLeaveApproved,
			"Leave request approved",
			fmt.Sprintf("Your leave from %s to %s was approved",
				request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// Reject implements leave.LeaveService. Rejection releases the pending
// reservation.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectRequestRequest, approverUserID string, approverEmployeeID *string) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if approverEmployeeID != nil && *approverEmployeeID == request.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrOwnRequestApproval
	}
	if !request.CanTransitionTo(leave.StatusRejected) {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	request.Status = leave.StatusRejected
	request.RejectionReason = &req.Reason

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requests.UpdateStatus(ctx, request, leave.StatusPending); err != nil {
			return err
		}

		balance, err := s.balances.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			return err
		}
		if err := s.balances.AddPending(ctx, balance.ID, -request.Duration); err != nil {
			return err
		}

		return s.notifyEmployee(ctx, request.EmployeeID, &approverUserID, notification.TypeLeaveRejected,
			"Leave request rejected",
			fmt.Sprintf("Your leave from %s to %s was rejected: %s",
				request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), req.Reason))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// Cancel implements leave.LeaveService. A pending cancellation releases the
// reservation; cancelling an approved request gives the used days back and
// reverts the stamped attendance rows.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, requestID string, actorUserID string, actorEmployeeID *string, isPrivileged bool) (leave.LeaveRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	isOwner := actorEmployeeID != nil && *actorEmployeeID == request.EmployeeID
	if !isOwner && !isPrivileged {
		return leave.LeaveRequestResponse{}, leave.ErrNotRequestOwner
	}
	if !request.CanTransitionTo(leave.StatusCancelled) {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	from := request.Status
	now := s.now()
	request.Status = leave.StatusCancelled
	request.CancelledBy = &actorUserID
	request.CancelledAt = &now

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requests.UpdateStatus(ctx, request, from); err != nil {
			return err
		}

		balance, err := s.balances.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			return err
		}

		switch from {
		case leave.StatusPending:
			if err := s.balances.AddPending(ctx, balance.ID, -request.Duration); err != nil {
				return err
			}
		case leave.StatusApproved:
			if err := s.balances.ReleaseUsed(ctx, balance.ID, request.Duration); err != nil {
				return err
			}
			if _, err := s.attendance.RevertLeaveDays(ctx, request.ID); err != nil {
				return err
			}
		}

		if isOwner {
			return nil
		}
		return s.notifyEmployee(ctx, request.EmployeeID, &actorUserID, notification.TypeLeaveCancel,
			"Leave request cancelled",
			fmt.Sprintf("Your leave from %s to %s was cancelled",
				request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// GetMyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	return s.GetBalances(ctx, employeeID, year)
}

// GetBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}

	balances, err := s.balances.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, leave.ToBalanceResponse(b))
	}
	return resp, nil
}

func (s *LeaveServiceImpl) notifyManager(ctx context.Context, emp employee.Employee, typ notification.NotificationType, title, message string) error {
	if emp.ManagerID == nil {
		return nil
	}
	manager, err := s.employees.GetByID(ctx, *emp.ManagerID)
	if err != nil {
		return err
	}

	_, err = s.notifier.Create(ctx, notification.Notification{
		Type:    typ,
		Title:   title,
		Message: message,
	}, []string{manager.UserID})
	return err
}

func (s *LeaveServiceImpl) notifyEmployee(ctx context.Context, employeeID string, senderUserID *string, typ notification.NotificationType, title, message string) error {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	_, err = s.notifier.Create(ctx, notification.Notification{
		Type:     typ,
		Title:    title,
		Message:  message,
		SenderID: senderUserID,
	}, []string{emp.UserID})
	return err
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
