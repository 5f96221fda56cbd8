package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/holiday"
	"github.com/workstead/hr-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	reports  report.ReportRepository
	holidays holiday.HolidayRepository

	now func() time.Time
}

func NewReportService(
	reportRepository report.ReportRepository,
	holidayRepository holiday.HolidayRepository,
) report.ReportService {
	return &ReportServiceImpl{
		reports:  reportRepository,
		holidays: holidayRepository,
		now:      time.Now,
	}
}

// AttendanceReportData implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReportData(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	from, _ := time.Parse("2006-01-02", req.From)
	to, _ := time.Parse("2006-01-02", req.To)

	holidays, err := s.holidays.GetByRange(ctx, from, to)
	if err != nil {
		return report.AttendanceReport{}, err
	}
	workDays := countWorkDays(from, to, holidays)

	rows, err := s.reports.GetAttendanceAggregates(ctx, from, to, req.DepartmentID)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	for i := range rows {
		fillDerivedMetrics(&rows[i], workDays)
	}

	return report.AttendanceReport{
		PeriodStart: req.From,
		PeriodEnd:   req.To,
		Department:  req.DepartmentID,
		GeneratedAt: s.now().Format(time.RFC3339),
		WorkDays:    workDays,
		Rows:        rows,
	}, nil
}

// AttendanceReportFile implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReportFile(ctx context.Context, req report.AttendanceReportRequest, format report.Format) (report.File, error) {
	data, err := s.AttendanceReportData(ctx, req)
	if err != nil {
		return report.File{}, err
	}
	if len(data.Rows) == 0 {
		return report.File{}, report.ErrNoReportData
	}

	name := fmt.Sprintf("attendance-report_%s_%s", req.From, req.To)
	switch format {
	case report.FormatCSV:
		return renderCSV(name, attendanceHeaders(), attendanceCells(data.Rows))
	case report.FormatExcel:
		return renderExcel(name, "Attendance", attendanceHeaders(), attendanceCells(data.Rows))
	case report.FormatPDF:
		title := fmt.Sprintf("Attendance Report %s to %s", req.From, req.To)
		return renderPDF(name, title, attendanceHeaders(), attendanceColumnWeights(), attendanceCells(data.Rows))
	}
	return report.File{}, report.ErrUnsupportedFormat
}

// LeaveBalanceReportData implements report.ReportService.
func (s *ReportServiceImpl) LeaveBalanceReportData(ctx context.Context, req report.LeaveBalanceReportRequest) (report.LeaveBalanceReport, error) {
	if req.Year == 0 {
		req.Year = s.now().Year()
	}
	if err := req.Validate(); err != nil {
		return report.LeaveBalanceReport{}, err
	}

	rows, err := s.reports.GetLeaveBalanceRows(ctx, req.Year)
	if err != nil {
		return report.LeaveBalanceReport{}, err
	}

	return report.LeaveBalanceReport{
		Year:        req.Year,
		GeneratedAt: s.now().Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

// LeaveBalanceReportFile implements report.ReportService.
func (s *ReportServiceImpl) LeaveBalanceReportFile(ctx context.Context, req report.LeaveBalanceReportRequest, format report.Format) (report.File, error) {
	data, err := s.LeaveBalanceReportData(ctx, req)
	if err != nil {
		return report.File{}, err
	}
	if len(data.Rows) == 0 {
		return report.File{}, report.ErrNoReportData
	}

	name := fmt.Sprintf("leave-balance-report_%d", data.Year)
	switch format {
	case report.FormatCSV:
		return renderCSV(name, balanceHeaders(), balanceCells(data.Rows))
	case report.FormatExcel:
		return renderExcel(name, "Leave Balances", balanceHeaders(), balanceCells(data.Rows))
	case report.FormatPDF:
		title := fmt.Sprintf("Leave Balance Report %d", data.Year)
		return renderPDF(name, title, balanceHeaders(), balanceColumnWeights(), balanceCells(data.Rows))
	}
	return report.File{}, report.ErrUnsupportedFormat
}

// countWorkDays counts the days in [from, to] that are neither weekends nor
// listed holidays.
func countWorkDays(from, to time.Time, holidays []holiday.Holiday) int {
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date.Format("2006-01-02")] = struct{}{}
	}

	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, ok := holidaySet[d.Format("2006-01-02")]; ok {
			continue
		}
		days++
	}
	return days
}

// fillDerivedMetrics computes attendance percentage, average work hours and
// the weighted performance score with its letter grade.
func fillDerivedMetrics(row *report.AttendanceReportRow, workDays int) {
	row.WorkDays = workDays

	if workDays > 0 {
		row.AttendancePct = float64(row.DaysPresent) / float64(workDays) * 100
	}
	if row.DaysPresent > 0 {
		row.AvgWorkHours = row.TotalWorkHours / float64(row.DaysPresent)
	}

	hoursFactor := math.Min(row.AvgWorkHours/8, 1)
	row.PerformanceScore = 0.6*row.AttendancePct + 0.4*hoursFactor*100
	row.Grade = gradeFor(row.PerformanceScore)
}

func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	}
	return "F"
}

func attendanceHeaders() []string {
	return []string{
		"Employee Code", "Name", "Department",
		"Work Days", "Present", "Leave", "Absent",
		"Attendance %", "Avg Hours", "Score", "Grade",
	}
}

// attendanceColumnWeights are the relative header widths normalized onto the
// PDF grid by the renderer.
func attendanceColumnWeights() []float64 {
	return []float64{1.4, 2.2, 1.8, 1, 1, 1, 1, 1.3, 1.2, 1, 0.8}
}

func attendanceCells(rows []report.AttendanceReportRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.EmployeeCode,
			r.EmployeeName,
			r.DepartmentName,
			fmt.Sprintf("%d", r.WorkDays),
			fmt.Sprintf("%d", r.DaysPresent),
			fmt.Sprintf("%d", r.DaysLeave),
			fmt.Sprintf("%d", r.DaysAbsent),
			fmt.Sprintf("%.1f", r.AttendancePct),
			fmt.Sprintf("%.2f", r.AvgWorkHours),
			fmt.Sprintf("%.1f", r.PerformanceScore),
			r.Grade,
		})
	}
	return cells
}

func balanceHeaders() []string {
	return []string{
		"Employee Code", "Name", "Department", "Leave Type",
		"Allocated", "Carried Forward", "Used", "Pending", "Available",
	}
}

func balanceColumnWeights() []float64 {
	return []float64{1.4, 2.2, 1.8, 1.6, 1, 1.3, 1, 1, 1}
}

func balanceCells(rows []report.LeaveBalanceReportRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.EmployeeCode,
			r.EmployeeName,
			r.DepartmentName,
			r.LeaveTypeName,
			fmt.Sprintf("%.1f", r.Allocated),
			fmt.Sprintf("%.1f", r.CarriedForward),
			fmt.Sprintf("%.1f", r.Used),
			fmt.Sprintf("%.1f", r.Pending),
			fmt.Sprintf("%.1f", r.Available),
		})
	}
	return cells
}
