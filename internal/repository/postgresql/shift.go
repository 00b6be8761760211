package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/shift"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// TIME columns are read as text so the wall clock stays timezone-naive.
const shiftColumns = `id, name, start_time::text, end_time::text, effective_from, effective_to, is_active`

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

func (s *shiftRepository) queryShifts(ctx context.Context, query string, args ...interface{}) ([]shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var sh shift.Shift
		if err := rows.Scan(
			&sh.ID, &sh.Name, &sh.StartTime, &sh.EndTime,
			&sh.EffectiveFrom, &sh.EffectiveTo, &sh.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

// GetActiveCovering implements shift.ShiftRepository.
func (s *shiftRepository) GetActiveCovering(ctx context.Context, date time.Time) ([]shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE is_active = TRUE
		  AND (effective_from IS NULL OR effective_from <= $1::date)
		  AND (effective_to IS NULL OR effective_to >= $1::date)
		ORDER BY id
	`
	return s.queryShifts(ctx, query, date.Format(dateLayout))
}

// GetActive implements shift.ShiftRepository.
func (s *shiftRepository) GetActive(ctx context.Context) ([]shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE is_active = TRUE
		ORDER BY id
	`
	return s.queryShifts(ctx, query)
}

type attendanceRuleRepository struct {
	db *database.DB
}

func NewAttendanceRuleRepository(db *database.DB) shift.RuleRepository {
	return &attendanceRuleRepository{db: db}
}

// GetActive implements shift.RuleRepository.
func (r *attendanceRuleRepository) GetActive(ctx context.Context) (shift.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, grace_minutes, notify_employee, notify_hr_admin, is_active
		FROM attendance_rules
		WHERE is_active = TRUE
		ORDER BY id DESC
		LIMIT 1
	`

	var rule shift.Rule
	err := q.QueryRow(ctx, query).Scan(
		&rule.ID, &rule.GraceMinutes, &rule.NotifyEmployee, &rule.NotifyHRAdmin, &rule.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Rule{}, shift.ErrRuleNotFound
		}
		return shift.Rule{}, fmt.Errorf("failed to get active attendance rule: %w", err)
	}
	return rule, nil
}
