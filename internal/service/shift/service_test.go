package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	shifts []shift.Shift
	err    error
}

func (f *fakeShiftRepo) GetActiveCovering(ctx context.Context, date time.Time) ([]shift.Shift, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.IsActive && s.Covers(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) GetActive(ctx context.Context) ([]shift.Shift, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRuleRepo struct {
	rule shift.Rule
	err  error
}

func (f *fakeRuleRepo) GetActive(ctx context.Context) (shift.Rule, error) {
	return f.rule, f.err
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveForDate(t *testing.T) {
	ramadan := shift.Shift{ID: 5, Name: " ramadan ", StartTime: "09:00:00", EndTime: "15:00:00",
		EffectiveFrom: day(2024, 3, 10), EffectiveTo: day(2024, 4, 9), IsActive: true}
	summer := shift.Shift{ID: 3, Name: "Summer", StartTime: "07:00:00", EndTime: "15:00:00",
		EffectiveFrom: day(2024, 3, 1), EffectiveTo: day(2024, 9, 30), IsActive: true}
	winter := shift.Shift{ID: 4, Name: "WINTER", StartTime: "08:00:00", EndTime: "16:00:00",
		EffectiveFrom: day(2024, 10, 1), EffectiveTo: day(2025, 2, 28), IsActive: true}
	night := shift.Shift{ID: 1, Name: "Night", StartTime: "22:00:00", EndTime: "06:00:00", IsActive: true}

	tests := []struct {
		name   string
		shifts []shift.Shift
		date   time.Time
		wantID int64
	}{
		{
			name:   "ramadan beats summer when both cover",
			shifts: []shift.Shift{summer, ramadan, night},
			date:   *day(2024, 3, 15),
			wantID: 5,
		},
		{
			name:   "range bounds are inclusive",
			shifts: []shift.Shift{summer, ramadan},
			date:   *day(2024, 4, 9),
			wantID: 5,
		},
		{
			name:   "open-ended other shift covers every day",
			shifts: []shift.Shift{night},
			date:   *day(2030, 1, 1),
			wantID: 1,
		},
		{
			name:   "fallback prefers winter over summer",
			shifts: []shift.Shift{summer, winter},
			date:   *day(2026, 6, 1),
			wantID: 4,
		},
		{
			name: "ties broken by lowest id",
			shifts: []shift.Shift{
				{ID: 9, Name: "Summer", StartTime: "07:00", EndTime: "15:00", IsActive: true},
				{ID: 7, Name: "summer", StartTime: "07:30", EndTime: "15:30", IsActive: true},
			},
			date:   *day(2024, 6, 1),
			wantID: 7,
		},
		{
			name: "inactive covering shift is ignored",
			shifts: []shift.Shift{
				{ID: 2, Name: "Ramadan", StartTime: "09:00", EndTime: "15:00", IsActive: false},
				summer,
			},
			date:   *day(2024, 3, 15),
			wantID: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeShiftRepo{shifts: tt.shifts}, &fakeRuleRepo{})

			got, err := r.ResolveForDate(context.Background(), tt.date)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestResolveForDate_NoActiveShift(t *testing.T) {
	r := NewResolver(&fakeShiftRepo{shifts: []shift.Shift{{ID: 1, Name: "Winter", IsActive: false}}}, &fakeRuleRepo{})

	got, err := r.ResolveForDate(context.Background(), *day(2024, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveForDate_RepositoryError(t *testing.T) {
	r := NewResolver(&fakeShiftRepo{err: errors.New("connection refused")}, &fakeRuleRepo{})

	_, err := r.ResolveForDate(context.Background(), *day(2024, 1, 1))
	assert.Error(t, err)
}

func TestActiveRule(t *testing.T) {
	t.Run("active row", func(t *testing.T) {
		want := shift.Rule{ID: 7, GraceMinutes: 5, NotifyEmployee: false, NotifyHRAdmin: true, IsActive: true}
		r := NewResolver(&fakeShiftRepo{}, &fakeRuleRepo{rule: want})
		assert.Equal(t, want, r.ActiveRule(context.Background()))
	})

	t.Run("no row falls back to default", func(t *testing.T) {
		r := NewResolver(&fakeShiftRepo{}, &fakeRuleRepo{err: shift.ErrRuleNotFound})
		got := r.ActiveRule(context.Background())
		assert.Equal(t, 15, got.GraceMinutes)
		assert.True(t, got.NotifyEmployee)
		assert.True(t, got.NotifyHRAdmin)
	})

	t.Run("repository failure falls back to default", func(t *testing.T) {
		r := NewResolver(&fakeShiftRepo{}, &fakeRuleRepo{err: errors.New("timeout")})
		assert.Equal(t, shift.DefaultRule, r.ActiveRule(context.Background()))
	})
}
