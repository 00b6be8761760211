package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListOffices(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Punch(w http.ResponseWriter, r *http.Request)
	Missing(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ListOffices handles GET /attendance/offices
func (h *attendanceHandlerImpl) ListOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := h.attendanceService.ListOffices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, offices)
}

// Today handles GET /attendance/today
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	today, err := h.attendanceService.Today(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// Punch handles POST /attendance/punch
func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("failed to decode punch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = middleware.ActorFromContext(r.Context())

	result, err := h.attendanceService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Checked in successfully"
	if req.PunchType == string(attendance.PunchOut) {
		message = "Checked out successfully"
	}
	response.SuccessWithMessage(w, message, result)
}

// Missing handles GET /attendance/admin/missing
func (h *attendanceHandlerImpl) Missing(w http.ResponseWriter, r *http.Request) {
	req := attendance.MissingRequest{Date: r.URL.Query().Get("date")}

	missing, err := h.attendanceService.Missing(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, missing)
}
