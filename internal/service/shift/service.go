package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
)

const otherPriority = 99

// Seasonal shifts win in this order when their effective range covers the day.
var coveringPriority = map[string]int{
	shift.NameRamadan: 1,
	shift.NameSummer:  2,
	shift.NameWinter:  3,
}

// Without a covering shift any active one is used, winter first.
var fallbackPriority = map[string]int{
	shift.NameWinter:  1,
	shift.NameSummer:  2,
	shift.NameRamadan: 3,
}

type ResolverImpl struct {
	shiftRepo shift.ShiftRepository
	ruleRepo  shift.RuleRepository
}

func NewResolver(shiftRepo shift.ShiftRepository, ruleRepo shift.RuleRepository) shift.Resolver {
	return &ResolverImpl{
		shiftRepo: shiftRepo,
		ruleRepo:  ruleRepo,
	}
}

// ResolveForDate implements shift.Resolver.
func (r *ResolverImpl) ResolveForDate(ctx context.Context, date time.Time) (*shift.Shift, error) {
	covering, err := r.shiftRepo.GetActiveCovering(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts covering %s: %w", date.Format("2006-01-02"), err)
	}
	if len(covering) > 0 {
		return pick(covering, coveringPriority), nil
	}

	active, err := r.shiftRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active shifts: %w", err)
	}
	if len(active) == 0 {
		return nil, nil
	}
	return pick(active, fallbackPriority), nil
}

// ActiveRule implements shift.Resolver.
func (r *ResolverImpl) ActiveRule(ctx context.Context) shift.Rule {
	rule, err := r.ruleRepo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, shift.ErrRuleNotFound) {
			slog.Warn("failed to load attendance rule, using default", "error", err)
		}
		return shift.DefaultRule
	}
	return rule
}

// pick returns the lowest priority, ties broken by lowest id.
func pick(shifts []shift.Shift, priority map[string]int) *shift.Shift {
	rank := func(s shift.Shift) int {
		if p, ok := priority[s.NormalizedName()]; ok {
			return p
		}
		return otherPriority
	}

	sorted := append([]shift.Shift(nil), shifts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rank(sorted[i]), rank(sorted[j])
		if ri != rj {
			return ri < rj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return &sorted[0]
}
