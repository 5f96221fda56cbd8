package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance // employeeID|date -> record
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = "att-" + recordKey(att.EmployeeID, att.Date)
	f.records[recordKey(att.EmployeeID, att.Date)] = &att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *att
	return &copied, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[recordKey(att.EmployeeID, att.Date)] = &att
	return nil
}

func (f *fakeAttendanceRepo) UpsertLeaveDay(ctx context.Context, employeeID string, date time.Time, leaveRequestID string) error {
	f.records[recordKey(employeeID, date)] = &attendance.Attendance{
		EmployeeID:     employeeID,
		Date:           date,
		Status:         attendance.StatusLeave,
		LeaveRequestID: &leaveRequestID,
	}
	return nil
}

func (f *fakeAttendanceRepo) RevertLeaveDays(ctx context.Context, leaveRequestID string) (int64, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type fakeHolidayRepo struct {
	byDate map[string]holiday.Holiday
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{byDate: make(map[string]holiday.Holiday)}
}

func (f *fakeHolidayRepo) add(h holiday.Holiday) {
	f.byDate[h.Date.Format("2006-01-02")] = h
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.add(h)
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	return holiday.Holiday{}, holiday.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	h, ok := f.byDate[date.Format("2006-01-02")]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (f *fakeHolidayRepo) GetByRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Update(ctx context.Context, h holiday.Holiday) error { return nil }

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestService(repo *fakeAttendanceRepo, holidays *fakeHolidayRepo, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo, holidays).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAttendanceService_CheckIn_CreatesRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, newFakeHolidayRepo(), time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC))

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, "2026-03-02", resp.Date)
	require.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.CheckOut)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, newFakeHolidayRepo(), time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_OnApprovedLeave(t *testing.T) {
	repo := newFakeAttendanceRepo()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertLeaveDay(context.Background(), "emp-1", day, "req-1"))

	svc := newTestService(repo, newFakeHolidayRepo(), day.Add(8*time.Hour))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrOnApprovedLeave)
}

func TestAttendanceService_CheckIn_WeekendStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	// 2026-03-07 is a Saturday.
	svc := newTestService(repo, newFakeHolidayRepo(), time.Date(2026, time.March, 7, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusWeekend, resp.Status)
	require.NotNil(t, resp.CheckIn)
}

func TestAttendanceService_CheckIn_HolidayStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	holidays := newFakeHolidayRepo()
	holidays.add(holiday.Holiday{
		ID:   "hol-1",
		Name: "Founders Day",
		Date: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
	})
	svc := newTestService(repo, holidays, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))

	resp, err := svc.CheckIn(context.Background(), "emp-1")

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHoliday, resp.Status)
}

func TestAttendanceService_CheckOut_ComputesWorkHours(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)
	svc := newTestService(repo, newFakeHolidayRepo(), checkIn)

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return checkIn.Add(8*time.Hour + 30*time.Minute) }
	resp, err := svc.CheckOut(context.Background(), "emp-1")

	require.NoError(t, err)
	require.NotNil(t, resp.WorkHours)
	assert.InDelta(t, 8.5, *resp.WorkHours, 0.001)
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, newFakeHolidayRepo(), time.Date(2026, time.March, 2, 17, 0, 0, 0, time.UTC))

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, newFakeHolidayRepo(), time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), "emp-1")
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_TodayStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, newFakeHolidayRepo(), time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC))

	status, err := svc.TodayStatus(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)
	assert.Nil(t, status.Record)

	_, err = svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	status, err = svc.TodayStatus(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)
	require.NotNil(t, status.Record)
	assert.Equal(t, attendance.StatusPresent, status.Record.Status)
}
