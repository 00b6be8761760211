package security

import "time"

type ViolationType string

const (
	ViolationServerClockDrift ViolationType = "SERVER_CLOCK_DRIFT"
	ViolationClientClockDrift ViolationType = "CLIENT_CLOCK_DRIFT"
	ViolationGPSRejected      ViolationType = "GPS_REJECTED"
)

// Violation is an append-only audit record of a rejected punch attempt.
type Violation struct {
	ID           string
	EmployeeID   *string
	Type         ViolationType
	ServerTime   time.Time
	ReportedTime *time.Time
	DriftMinutes *float64
	Latitude     *float64
	Longitude    *float64
	Distance     *float64
	OfficeID     *string
	Details      string
	CreatedAt    time.Time
}
