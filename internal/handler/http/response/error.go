package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Security gates carry their own code and diagnostics
	var rejection *attendance.RejectionError
	if errors.As(err, &rejection) {
		Rejected(w, rejection.Code, rejectionMessage(rejection), rejection.Diagnostics)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingEmployee):
		Unauthorized(w, err.Error())

	// Permission errors
	case errors.Is(err, attendance.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Attendance request errors
	case errors.Is(err, attendance.ErrOfficeRequired),
		errors.Is(err, attendance.ErrInvalidPunchType),
		errors.Is(err, attendance.ErrInvalidClientTime),
		errors.Is(err, attendance.ErrNoActiveShift):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, office.ErrOfficeNotFound):
		BadRequest(w, "Office not found or inactive", nil)

	// Punch state conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, attendance.ErrAlreadyCheckedIn.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, attendance.ErrAlreadyCheckedOut.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		Conflict(w, attendance.ErrCheckOutBeforeCheckIn.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Report errors
	case errors.Is(err, report.ErrReportGenerationFailed):
		slog.Error("report generation failed", "error", err)
		InternalServerError(w, "Failed to generate report")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func rejectionMessage(rej *attendance.RejectionError) string {
	if errors.Is(rej.Err, attendance.ErrOutsideGeofence) {
		if distance, ok := rej.Diagnostics["distance"].(float64); ok {
			return fmt.Sprintf("%s (%.0fm away, allowed %.0fm)", rej.Err.Error(), distance, rej.Diagnostics["allowedRadius"])
		}
	}
	return rej.Err.Error()
}
