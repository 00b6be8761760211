package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - read access to leave_requests for attendance overlays
type LeaveRequestRepository interface {
	// GetApprovedInRange returns approved leave overlapping [from, to] for the given employees.
	// An empty employeeIDs slice means every employee.
	GetApprovedInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]LeaveRequest, error)
}
