package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/notification"
)

// fakeTransactor runs the function directly; rollback behavior is covered by
// the repository fakes returning errors.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.SubmittedAt = time.Now()
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeRequestRepo) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	filter.EmployeeID = employeeID
	return f.List(ctx, filter)
}

func (f *fakeRequestRepo) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, request leave.LeaveRequest, from leave.RequestStatus) error {
	stored, ok := f.requests[request.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if stored.Status != from {
		return leave.ErrAlreadyProcessed
	}
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRequestRepo) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeID != employeeID {
			continue
		}
		if r.Status != leave.StatusPending && r.Status != leave.StatusApproved {
			continue
		}
		if !r.StartDate.After(end) && !r.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) CountByStatus(ctx context.Context, status leave.RequestStatus) (int64, error) {
	var n int64
	for _, r := range f.requests {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeBalanceRepo struct {
	balances map[string]*leave.LeaveBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]*leave.LeaveBalance)}
}

func (f *fakeBalanceRepo) add(b leave.LeaveBalance) {
	f.balances[b.ID] = &b
}

func (f *fakeBalanceRepo) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	if balance.ID == "" {
		balance.ID = fmt.Sprintf("bal-%d", len(f.balances)+1)
	}
	f.add(balance)
	return balance, nil
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.Year == year {
			return *b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) ListByYear(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range f.balances {
		if b.Year == year {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) AddPending(ctx context.Context, balanceID string, delta float64) error {
	b, ok := f.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	after := b.Pending + delta
	if b.Allocated+b.CarriedForward-b.Used-after < 0 || after < 0 {
		return leave.ErrInsufficientBalance
	}
	b.Pending = after
	return nil
}

func (f *fakeBalanceRepo) MovePendingToUsed(ctx context.Context, balanceID string, days float64) error {
	b, ok := f.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if b.Pending < days {
		return leave.ErrInsufficientBalance
	}
	b.Pending -= days
	b.Used += days
	return nil
}

func (f *fakeBalanceRepo) ReleaseUsed(ctx context.Context, balanceID string, days float64) error {
	b, ok := f.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if b.Used < days {
		return leave.ErrInsufficientBalance
	}
	b.Used -= days
	return nil
}

type fakeTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.types[lt.ID] = lt
	return lt, nil
}

func (f *fakeTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeTypeRepo) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.Code == code {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeTypeRepo) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if activeOnly && !lt.IsActive {
			continue
		}
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeTypeRepo) Update(ctx context.Context, lt leave.LeaveType) error {
	f.types[lt.ID] = lt
	return nil
}

func (f *fakeTypeRepo) Delete(ctx context.Context, id string) error {
	delete(f.types, id)
	return nil
}

type fakeAttendanceRepo struct {
	leaveDays    map[string][]time.Time // leaveRequestID -> stamped dates
	revertedReqs []string
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{leaveDays: make(map[string][]time.Time)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) UpsertLeaveDay(ctx context.Context, employeeID string, date time.Time, leaveRequestID string) error {
	f.leaveDays[leaveRequestID] = append(f.leaveDays[leaveRequestID], date)
	return nil
}

func (f *fakeAttendanceRepo) RevertLeaveDays(ctx context.Context, leaveRequestID string) (int64, error) {
	n := int64(len(f.leaveDays[leaveRequestID]))
	delete(f.leaveDays, leaveRequestID)
	f.revertedReqs = append(f.revertedReqs, leaveRequestID)
	return n, nil
}

func (f *fakeAttendanceRepo) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.employees)), nil
}

type sentNotification struct {
	notification notification.Notification
	recipients   []string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Create(ctx context.Context, n notification.Notification, recipientIDs []string) (notification.Notification, error) {
	f.sent = append(f.sent, sentNotification{notification: n, recipients: recipientIDs})
	return n, nil
}

func (f *fakeNotifier) GetByUserID(ctx context.Context, userID string, page, limit int, unreadOnly bool) ([]notification.Delivery, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error {
	return nil
}

type leaveFixture struct {
	service     *LeaveServiceImpl
	requests    *fakeRequestRepo
	balances    *fakeBalanceRepo
	types       *fakeTypeRepo
	attendances *fakeAttendanceRepo
	employees   *fakeEmployeeRepo
	notifier    *fakeNotifier
}

// newLeaveFixture sets up an employee with a manager and a 12-day annual
// balance for 2026.
func newLeaveFixture() *leaveFixture {
	f := &leaveFixture{
		requests:    newFakeRequestRepo(),
		balances:    newFakeBalanceRepo(),
		types:       &fakeTypeRepo{types: make(map[string]leave.LeaveType)},
		attendances: newFakeAttendanceRepo(),
		employees:   &fakeEmployeeRepo{employees: make(map[string]employee.Employee)},
		notifier:    &fakeNotifier{},
	}

	managerID := "emp-mgr"
	f.employees.employees["emp-1"] = employee.Employee{
		ID: "emp-1", UserID: "user-1", EmployeeCode: "EMP-0001", ManagerID: &managerID,
	}
	f.employees.employees[managerID] = employee.Employee{
		ID: managerID, UserID: "user-mgr", EmployeeCode: "EMP-0099",
	}
	f.types.types["lt-annual"] = leave.LeaveType{
		ID: "lt-annual", Name: "Annual Leave", Code: "ANNUAL", DefaultAnnualQuota: 12, IsActive: true,
	}
	f.balances.add(leave.LeaveBalance{
		ID: "bal-1", EmployeeID: "emp-1", LeaveTypeID: "lt-annual", Year: 2026, Allocated: 12,
	})

	svc := NewLeaveService(fakeTransactor{}, f.requests, f.balances, f.types, f.attendances, f.employees, f.notifier)
	f.service = svc.(*LeaveServiceImpl)
	f.service.now = func() time.Time {
		return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	}
	return f
}

func submitRequest(t *testing.T, f *leaveFixture, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-annual",
		StartDate:   start,
		EndDate:     end,
		Reason:      "Family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_Submit_ReservesPending(t *testing.T) {
	f := newLeaveFixture()

	resp := submitRequest(t, f, "2026-03-09", "2026-03-11")

	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, 3.0, resp.Duration)

	balance := f.balances.balances["bal-1"]
	assert.Equal(t, 3.0, balance.Pending)
	assert.Equal(t, 0.0, balance.Used)

	// Manager got notified.
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, []string{"user-mgr"}, f.notifier.sent[0].recipients)
	assert.Equal(t, notification.TypeLeaveRequest, f.notifier.sent[0].notification.Type)
}

func TestLeaveService_Submit_SeedsMissingBalanceRow(t *testing.T) {
	f := newLeaveFixture()

	// No balance row exists for 2027 yet.
	resp := submitRequest(t, f, "2027-03-09", "2027-03-11")
	assert.Equal(t, string(leave.StatusPending), resp.Status)

	seeded, err := f.balances.GetByEmployeeTypeYear(context.Background(), "emp-1", "lt-annual", 2027)
	require.NoError(t, err)
	assert.Equal(t, 12.0, seeded.Allocated)
	assert.Equal(t, 3.0, seeded.Pending)

	// The 2026 balance is untouched.
	assert.Equal(t, 0.0, f.balances.balances["bal-1"].Pending)
}

func TestLeaveService_Submit_InsufficientBalance(t *testing.T) {
	f := newLeaveFixture()
	f.balances.balances["bal-1"].Allocated = 2

	_, err := f.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-annual",
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-11",
		Reason:      "Family trip",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Equal(t, 0.0, f.balances.balances["bal-1"].Pending)
}

func TestLeaveService_Submit_InvalidDateRange(t *testing.T) {
	f := newLeaveFixture()

	_, err := f.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-annual",
		StartDate:   "2026-03-11",
		EndDate:     "2026-03-09",
		Reason:      "Family trip",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_Submit_DurationMismatch(t *testing.T) {
	f := newLeaveFixture()
	wrong := 5.0

	_, err := f.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-annual",
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-11",
		Duration:    &wrong,
		Reason:      "Family trip",
	})

	assert.ErrorIs(t, err, leave.ErrDurationMismatch)
}

func TestLeaveService_Submit_Overlapping(t *testing.T) {
	f := newLeaveFixture()
	submitRequest(t, f, "2026-03-09", "2026-03-11")

	_, err := f.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-annual",
		StartDate:   "2026-03-11",
		EndDate:     "2026-03-13",
		Reason:      "Family trip, part two",
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestLeaveService_Submit_InactiveType(t *testing.T) {
	f := newLeaveFixture()
	lt := f.types.types["lt-annual"]
	lt.IsActive = false
	f.types.types["lt-annual"] = lt

	_, err := f.service.Submit(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-annual",
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-11",
		Reason:      "Family trip",
	})

	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
}

func TestLeaveService_Approve_MovesPendingToUsed(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")

	resp, err := f.service.Approve(context.Background(), created.ID, "user-mgr", strPtr("emp-mgr"))

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), resp.Status)

	balance := f.balances.balances["bal-1"]
	assert.Equal(t, 0.0, balance.Pending)
	assert.Equal(t, 3.0, balance.Used)

	// One attendance row stamped per day of the range.
	assert.Len(t, f.attendances.leaveDays[created.ID], 3)

	// Submit notified the manager, approval notified the employee.
	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, []string{"user-1"}, f.notifier.sent[1].recipients)
	assert.Equal(t, notification.TypeLeaveApproved, f.notifier.sent[1].notification.Type)
}

func TestLeaveService_Approve_OwnRequest(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")

	_, err := f.service.Approve(context.Background(), created.ID, "user-1", strPtr("emp-1"))

	assert.ErrorIs(t, err, leave.ErrOwnRequestApproval)
}

func TestLeaveService_Approve_AlreadyProcessed(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")

	_, err := f.service.Approve(context.Background(), created.ID, "user-mgr", strPtr("emp-mgr"))
	require.NoError(t, err)

	_, err = f.service.Approve(context.Background(), created.ID, "user-mgr", strPtr("emp-mgr"))
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveService_Reject_ReleasesPending(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")

	resp, err := f.service.Reject(context.Background(), leave.RejectRequestRequest{
		RequestID: created.ID,
		Reason:    "Short staffed that week",
	}, "user-mgr", strPtr("emp-mgr"))

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "Short staffed that week", *resp.RejectionReason)

	balance := f.balances.balances["bal-1"]
	assert.Equal(t, 0.0, balance.Pending)
	assert.Equal(t, 0.0, balance.Used)
}

func TestLeaveService_Cancel_PendingReleasesPending(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")

	resp, err := f.service.Cancel(context.Background(), created.ID, "user-1", strPtr("emp-1"), false)

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), resp.Status)
	assert.Equal(t, 0.0, f.balances.balances["bal-1"].Pending)

	// The owner cancelled, so nobody else is notified beyond the submit.
	assert.Len(t, f.notifier.sent, 1)
}

func TestLeaveService_Cancel_ApprovedRevertsAttendance(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")
	_, err := f.service.Approve(context.Background(), created.ID, "user-mgr", strPtr("emp-mgr"))
	require.NoError(t, err)

	resp, err := f.service.Cancel(context.Background(), created.ID, "user-mgr", strPtr("emp-mgr"), true)

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), resp.Status)

	balance := f.balances.balances["bal-1"]
	assert.Equal(t, 0.0, balance.Used)
	assert.Equal(t, 0.0, balance.Pending)

	// Stamped leave days were reverted.
	assert.Contains(t, f.attendances.revertedReqs, created.ID)
	assert.Empty(t, f.attendances.leaveDays[created.ID])

	// Cancelled by someone else, so the employee is notified.
	last := f.notifier.sent[len(f.notifier.sent)-1]
	assert.Equal(t, notification.TypeLeaveCancel, last.notification.Type)
	assert.Equal(t, []string{"user-1"}, last.recipients)
}

func TestLeaveService_Cancel_NotOwner(t *testing.T) {
	f := newLeaveFixture()
	created := submitRequest(t, f, "2026-03-09", "2026-03-11")

	_, err := f.service.Cancel(context.Background(), created.ID, "user-2", strPtr("emp-2"), false)

	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
}

func TestLeaveService_GetBalances_DefaultsToCurrentYear(t *testing.T) {
	f := newLeaveFixture()

	balances, err := f.service.GetBalances(context.Background(), "emp-1", 0)

	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, 2026, balances[0].Year)
	assert.Equal(t, 12.0, balances[0].Available)
}

func strPtr(s string) *string { return &s }
