package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	// GetActiveCovering returns active shifts whose effective range contains date
	GetActiveCovering(ctx context.Context, date time.Time) ([]Shift, error)

	// GetActive returns every active shift regardless of its effective range
	GetActive(ctx context.Context) ([]Shift, error)
}

type RuleRepository interface {
	// GetActive returns the active rule with the highest id, or ErrRuleNotFound
	GetActive(ctx context.Context) (Rule, error)
}
