package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

// AttendanceService defines the punch pipeline and its read side
type AttendanceService interface {
	// Punch validates clocks, geofence and shift, then records an IN or OUT
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// Today returns the caller's shift, grace minutes and today's row
	Today(ctx context.Context, actor *user.Actor) (TodayResponse, error)

	// ListOffices returns active offices with their geofence metadata
	ListOffices(ctx context.Context) ([]office.OfficeResponse, error)

	// Missing lists active employees with no or incomplete attendance on a date (admin)
	Missing(ctx context.Context, req MissingRequest) (MissingResponse, error)
}

// Notifier delivers late check-in notifications. Implementations must not block.
type Notifier interface {
	NotifyLate(ctx context.Context, n LateNotification)
}
