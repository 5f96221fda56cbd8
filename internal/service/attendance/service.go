package attendance

import (
	"context"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	holidays holiday.HolidayRepository

	now func() time.Time
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	holidayRepository holiday.HolidayRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		holidays:             holidayRepository,
		now:                  time.Now,
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// statusForDate resolves the day's status: the holiday table wins, then
// Saturday/Sunday, otherwise a regular working day.
func (s *AttendanceServiceImpl) statusForDate(ctx context.Context, date time.Time) (attendance.Status, error) {
	h, err := s.holidays.GetByDate(ctx, date)
	if err != nil {
		return "", err
	}
	if h != nil {
		return attendance.StatusHoliday, nil
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return attendance.StatusWeekend, nil
	}
	return attendance.StatusPresent, nil
}

// CheckIn implements attendance.AttendanceService. One record per day: a
// second check-in fails, and a day already stamped as approved leave cannot
// be checked into. The record's status comes from statusForDate, so checking
// in on a holiday or weekend keeps that day marked as such.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := s.now()
	today := dateOf(now)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil && existing.Status == attendance.StatusLeave {
		return attendance.AttendanceResponse{}, attendance.ErrOnApprovedLeave
	}
	if existing != nil && existing.CheckIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status, err := s.statusForDate(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if existing != nil {
		existing.CheckIn = &now
		existing.Status = status
		if err := s.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.ToResponse(*existing), nil
	}

	att, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     status,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(att), nil
}

// CheckOut implements attendance.AttendanceService. Work hours are the span
// between check-in and check-out.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := s.now()
	today := dateOf(now)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing == nil || existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	hours := now.Sub(*existing.CheckIn).Hours()
	existing.CheckOut = &now
	existing.WorkHours = &hours

	if err := s.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(*existing), nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatusResponse, error) {
	today := dateOf(s.now())

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	resp := attendance.TodayStatusResponse{Date: today.Format("2006-01-02")}
	if existing != nil {
		r := attendance.ToResponse(*existing)
		resp.Record = &r
		resp.CheckedIn = existing.CheckIn != nil
		resp.CheckedOut = existing.CheckOut != nil
	}
	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = employeeID
	filter.DepartmentID = ""
	return s.List(ctx, filter)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, attendance.ToResponse(r))
	}
	return resp, nil
}
