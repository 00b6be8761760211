package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the per-employee-per-day aggregate.
type AttendanceRepository interface {
	// LockOrCreate inserts the (employee, date) row when absent and returns it
	// locked FOR UPDATE. Must run inside a transaction.
	LockOrCreate(ctx context.Context, employeeID string, date time.Time, shiftID *int64) (Daily, error)

	// Update persists the mutable columns and returns the refreshed row
	Update(ctx context.Context, daily Daily) (Daily, error)

	// GetByEmployeeAndDate returns nil when no row exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Daily, error)

	GetByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Daily, error)
	GetByDate(ctx context.Context, date time.Time) ([]Daily, error)
	GetInRange(ctx context.Context, from, to time.Time) ([]Daily, error)
}

// PunchEventRepository is append-only.
type PunchEventRepository interface {
	Create(ctx context.Context, event PunchEvent) error
}
