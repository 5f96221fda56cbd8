package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/report"
	"github.com/workstead/hr-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	AttendanceReportData(w http.ResponseWriter, r *http.Request)
	LeaveBalanceReport(w http.ResponseWriter, r *http.Request)
	LeaveBalanceReportData(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
	tempDir       string
}

func NewReportHandler(reportService report.ReportService, tempDir string) ReportHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &ReportHandlerImpl{
		reportService: reportService,
		tempDir:       tempDir,
	}
}

// AttendanceReport implements ReportHandler. Streams the rendered file as an
// attachment.
func (h *ReportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	req := attendanceReportRequest(r)

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.AttendanceReportFile(r.Context(), req, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.streamFile(w, r, file)
}

// AttendanceReportData implements ReportHandler. Returns the raw rows as JSON.
func (h *ReportHandlerImpl) AttendanceReportData(w http.ResponseWriter, r *http.Request) {
	data, err := h.reportService.AttendanceReportData(r.Context(), attendanceReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

// LeaveBalanceReport implements ReportHandler.
func (h *ReportHandlerImpl) LeaveBalanceReport(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.LeaveBalanceReportFile(r.Context(), report.LeaveBalanceReportRequest{Year: year}, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.streamFile(w, r, file)
}

// LeaveBalanceReportData implements ReportHandler.
func (h *ReportHandlerImpl) LeaveBalanceReportData(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	data, err := h.reportService.LeaveBalanceReportData(r.Context(), report.LeaveBalanceReportRequest{Year: year})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

// streamFile writes the rendered report to the temp dir, serves it as an
// attachment and removes it again.
func (h *ReportHandlerImpl) streamFile(w http.ResponseWriter, r *http.Request, file report.File) {
	tmp, err := os.CreateTemp(h.tempDir, "report-*"+filepath.Ext(file.Name))
	if err != nil {
		response.InternalServerError(w, "Failed to prepare report file")
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(file.Data); err != nil {
		response.InternalServerError(w, "Failed to write report file")
		return
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		response.InternalServerError(w, "Failed to read report file")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	http.ServeContent(w, r, file.Name, fileModTime(tmp), tmp)
}

func fileModTime(f *os.File) time.Time {
	if info, err := f.Stat(); err == nil {
		return info.ModTime()
	}
	return time.Now()
}

func attendanceReportRequest(r *http.Request) report.AttendanceReportRequest {
	q := r.URL.Query()
	return report.AttendanceReportRequest{
		From:         q.Get("from"),
		To:           q.Get("to"),
		DepartmentID: q.Get("department_id"),
	}
}
