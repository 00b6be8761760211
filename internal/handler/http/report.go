package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type ReportHandler interface {
	PersonalSummary(w http.ResponseWriter, r *http.Request)
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyAll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// PersonalSummary handles GET /attendance/summary/personal
func (h *reportHandlerImpl) PersonalSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.PersonalSummary(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// MonthlyReport handles GET /attendance/report/monthly
func (h *reportHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	req.EmployeeID = r.URL.Query().Get("employee_id")

	rep, err := h.reportService.MonthlyReport(r.Context(), middleware.ActorFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rep)
}

// ExportMonthlyAll handles GET /attendance/report/monthly/all
func (h *reportHandlerImpl) ExportMonthlyAll(w http.ResponseWriter, r *http.Request) {
	req, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.ExportMonthlyAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Warn("failed to write export", "filename", file.Filename, "error", err)
	}
}

// parsePeriod reads year and month. An omitted value stays zero and the
// report service resolves it against its own clock.
func parsePeriod(w http.ResponseWriter, r *http.Request) (report.MonthlyReportRequest, bool) {
	var req report.MonthlyReportRequest

	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 {
			response.BadRequest(w, "invalid month parameter", nil)
			return req, false
		}
		req.Month = month
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1 {
			response.BadRequest(w, "invalid year parameter", nil)
			return req, false
		}
		req.Year = year
	}

	return req, true
}
