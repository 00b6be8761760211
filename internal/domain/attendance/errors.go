package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Request errors
	ErrOfficeRequired    = errors.New("office_id is required")
	ErrInvalidPunchType  = errors.New("punch_type must be IN or OUT")
	ErrInvalidClientTime = errors.New("clientTime is not a valid timestamp")
	ErrNoActiveShift     = errors.New("no active shift configured")

	// Punch state errors
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out today")
	ErrCheckOutBeforeCheckIn = errors.New("cannot check out before checking in")

	// Security errors
	ErrServerClockDrift = errors.New("server clock does not match network time")
	ErrClientClockDrift = errors.New("device clock does not match server time")
	ErrLocationRequired = errors.New("location permission is required to punch")
	ErrOutsideGeofence  = errors.New("you are outside the allowed office radius")

	// General errors
	ErrForbidden = errors.New("not allowed to access this employee's attendance")
)

// Rejection codes carried by RejectionError.
const (
	CodeCriticalSecurity  = "CRITICAL_SECURITY_ERROR"
	CodeSecurityViolation = "SECURITY_VIOLATION"
	CodeGeofenceRejected  = "GEOFENCE_REJECTED"
)

// RejectionError is a security-relevant refusal. Diagnostics are returned to the
// caller so it can correct its clock or position.
type RejectionError struct {
	Code        string
	Err         error
	Diagnostics map[string]any
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

func reject(code string, err error, diagnostics map[string]any) *RejectionError {
	return &RejectionError{Code: code, Err: err, Diagnostics: diagnostics}
}

// NewCriticalSecurityError rejects a punch when the server clock itself is off.
func NewCriticalSecurityError(diagnostics map[string]any) *RejectionError {
	return reject(CodeCriticalSecurity, ErrServerClockDrift, diagnostics)
}

// NewSecurityViolation rejects a punch whose device clock drifted.
func NewSecurityViolation(diagnostics map[string]any) *RejectionError {
	return reject(CodeSecurityViolation, ErrClientClockDrift, diagnostics)
}

// NewGeofenceRejection rejects a punch with missing GPS or from outside the radius.
func NewGeofenceRejection(err error, diagnostics map[string]any) *RejectionError {
	return reject(CodeGeofenceRejected, err, diagnostics)
}
