package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
	"github.com/workstead/hr-backend-go/internal/domain/report"
)

func TestCountWorkDays(t *testing.T) {
	// 2026-03-02 is a Monday; the full week has five work days.
	from := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, countWorkDays(from, to, nil))

	// A holiday on the Wednesday drops one work day.
	holidays := []holiday.Holiday{
		{Name: "Some Holiday", Date: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 4, countWorkDays(from, to, holidays))

	// A holiday falling on a weekend changes nothing.
	holidays = append(holidays, holiday.Holiday{
		Name: "Weekend Holiday", Date: time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, 4, countWorkDays(from, to, holidays))
}

func TestCountWorkDays_SingleDay(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, countWorkDays(monday, monday, nil))
	assert.Equal(t, 0, countWorkDays(saturday, saturday, nil))
}

func TestFillDerivedMetrics(t *testing.T) {
	row := report.AttendanceReportRow{
		DaysPresent:    18,
		TotalWorkHours: 144, // 8h average
	}

	fillDerivedMetrics(&row, 20)

	assert.Equal(t, 20, row.WorkDays)
	assert.InDelta(t, 90.0, row.AttendancePct, 0.001)
	assert.InDelta(t, 8.0, row.AvgWorkHours, 0.001)
	// 0.6*90 + 0.4*100 = 94
	assert.InDelta(t, 94.0, row.PerformanceScore, 0.001)
	assert.Equal(t, "A", row.Grade)
}

func TestFillDerivedMetrics_ZeroDays(t *testing.T) {
	row := report.AttendanceReportRow{}

	fillDerivedMetrics(&row, 0)

	assert.Equal(t, 0.0, row.AttendancePct)
	assert.Equal(t, 0.0, row.AvgWorkHours)
	assert.Equal(t, "F", row.Grade)
}

func TestFillDerivedMetrics_CapsHoursFactor(t *testing.T) {
	// Long days must not push the hours factor past 1.
	row := report.AttendanceReportRow{
		DaysPresent:    20,
		TotalWorkHours: 240, // 12h average
	}

	fillDerivedMetrics(&row, 20)

	// 0.6*100 + 0.4*100 = 100, not more.
	assert.InDelta(t, 100.0, row.PerformanceScore, 0.001)
}

func TestGradeFor(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {90, "A"},
		{89.9, "B"}, {80, "B"},
		{79.9, "C"}, {70, "C"},
		{69.9, "D"}, {60, "D"},
		{59.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, gradeFor(c.score), "score %v", c.score)
	}
}

func TestGridSizes_SumToGrid(t *testing.T) {
	for _, weights := range [][]float64{
		attendanceColumnWeights(),
		balanceColumnWeights(),
		{1, 1, 1},
		{5, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	} {
		sizes := gridSizes(weights)
		require.Len(t, sizes, len(weights))

		sum := 0
		for _, s := range sizes {
			assert.GreaterOrEqual(t, s, 1)
			sum += s
		}
		assert.Equal(t, pdfGridColumns, sum, "weights %v", weights)
	}
}

func TestRenderCSV(t *testing.T) {
	file, err := renderCSV("test-report",
		[]string{"Code", "Name"},
		[][]string{{"EMP-0001", "Dana Wu"}, {"EMP-0002", "Sam Reyes, Jr."}},
	)

	require.NoError(t, err)
	assert.Equal(t, "test-report.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Code,Name", lines[0])
	// Commas inside a cell get quoted.
	assert.Contains(t, lines[2], `"Sam Reyes, Jr."`)
}

func TestAttendanceCells_MatchesHeaders(t *testing.T) {
	rows := []report.AttendanceReportRow{{
		EmployeeCode:   "EMP-0001",
		EmployeeName:   "Dana Wu",
		DepartmentName: "Engineering",
		WorkDays:       20,
		DaysPresent:    18,
	}}

	cells := attendanceCells(rows)
	require.Len(t, cells, 1)
	assert.Len(t, cells[0], len(attendanceHeaders()))
	assert.Len(t, attendanceColumnWeights(), len(attendanceHeaders()))
}

func TestBalanceCells_MatchesHeaders(t *testing.T) {
	rows := []report.LeaveBalanceReportRow{{
		EmployeeCode:  "EMP-0001",
		EmployeeName:  "Dana Wu",
		LeaveTypeName: "Annual Leave",
		Allocated:     12,
		Available:     9,
	}}

	cells := balanceCells(rows)
	require.Len(t, cells, 1)
	assert.Len(t, cells[0], len(balanceHeaders()))
	assert.Len(t, balanceColumnWeights(), len(balanceHeaders()))
}
