package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusWaitingApproval LeaveRequestStatus = "waiting_approval"
	LeaveRequestStatusApproved        LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected        LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled       LeaveRequestStatus = "cancelled"
)

// LeaveRequest is the read model used to overlay approved leave on attendance reports.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Status      LeaveRequestStatus

	// Relationships (for responses)
	LeaveTypeName *string
}

// CoversDate reports whether the calendar day of date is inside the leave range (inclusive).
func (l LeaveRequest) CoversDate(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= l.StartDate.Format("2006-01-02") && d <= l.EndDate.Format("2006-01-02")
}
