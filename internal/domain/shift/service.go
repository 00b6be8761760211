package shift

import (
	"context"
	"time"
)

// Resolver picks the schedule and policy that apply to a punch.
type Resolver interface {
	// ResolveForDate returns the shift in effect on date, or nil when no shift is active at all
	ResolveForDate(ctx context.Context, date time.Time) (*Shift, error)

	// ActiveRule never fails; it falls back to DefaultRule
	ActiveRule(ctx context.Context) Rule
}
