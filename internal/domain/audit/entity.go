package audit

import "time"

type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	StatusBlocked Status = "BLOCKED"
)

const (
	CategoryAttendance = "ATTENDANCE"
	CategorySecurity   = "SECURITY"
)

const (
	ActionAttendancePunch    = "ATTENDANCE_PUNCH"
	ActionClockTamperBlocked = "CLOCK_TAMPER_BLOCKED"
	ActionGeofenceRejected   = "GEOFENCE_REJECTED"
)

// Entry is one audit log line. Details is stored as JSON.
type Entry struct {
	ID        string
	ActorID   *string
	Action    string
	Category  string
	Status    Status
	Details   map[string]any
	CreatedAt time.Time
}
