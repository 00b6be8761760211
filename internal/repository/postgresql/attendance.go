package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const dateLayout = "2006-01-02"

const dailyColumns = `
	ad.id, ad.employee_id, ad.attendance_date, ad.shift_id, ad.status,
	ad.first_in, ad.office_id_first_in, ad.late_minutes,
	ad.last_out, ad.office_id_last_out, ad.worked_minutes,
	ad.created_at, ad.updated_at,
	e.employee_code, e.full_name`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanDaily(row pgx.Row) (attendance.Daily, error) {
	var d attendance.Daily
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.AttendanceDate, &d.ShiftID, &d.Status,
		&d.FirstIn, &d.OfficeIDFirstIn, &d.LateMinutes,
		&d.LastOut, &d.OfficeIDLastOut, &d.WorkedMinutes,
		&d.CreatedAt, &d.UpdatedAt,
		&d.EmployeeCode, &d.EmployeeName,
	)
	return d, err
}

func collectDaily(rows pgx.Rows) ([]attendance.Daily, error) {
	defer rows.Close()

	var result []attendance.Daily
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}
	return result, nil
}

// LockOrCreate implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockOrCreate(ctx context.Context, employeeID string, date time.Time, shiftID *int64) (attendance.Daily, error) {
	q := GetQuerier(ctx, a.db)
	day := date.Format(dateLayout)

	insert := `
		INSERT INTO attendance_daily (employee_id, attendance_date, shift_id, status)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (employee_id, attendance_date) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, employeeID, day, shiftID, attendance.StatusNotMarked); err != nil {
		return attendance.Daily{}, fmt.Errorf("failed to create attendance row: %w", err)
	}

	query := `
		SELECT ` + dailyColumns + `
		FROM attendance_daily ad
		JOIN employees e ON e.id = ad.employee_id
		WHERE ad.employee_id = $1
		  AND ad.attendance_date = $2::date
		FOR UPDATE OF ad
	`
	d, err := scanDaily(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		return attendance.Daily{}, fmt.Errorf("failed to lock attendance row: %w", err)
	}
	return d, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, d attendance.Daily) (attendance.Daily, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH updated AS (
			UPDATE attendance_daily SET
				shift_id = COALESCE($2, shift_id),
				status = $3,
				first_in = $4,
				office_id_first_in = $5,
				late_minutes = $6,
				last_out = $7,
				office_id_last_out = $8,
				worked_minutes = $9,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + dailyColumns + `
		FROM updated ad
		JOIN employees e ON e.id = ad.employee_id
	`

	updated, err := scanDaily(q.QueryRow(ctx, query,
		d.ID,
		d.ShiftID,
		d.Status,
		d.FirstIn,
		d.OfficeIDFirstIn,
		d.LateMinutes,
		d.LastOut,
		d.OfficeIDLastOut,
		d.WorkedMinutes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Daily{}, fmt.Errorf("attendance row %s not found: %w", d.ID, err)
		}
		return attendance.Daily{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Daily, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM attendance_daily ad
		JOIN employees e ON e.id = ad.employee_id
		WHERE ad.employee_id = $1
		  AND ad.attendance_date = $2::date
	`

	d, err := scanDaily(q.QueryRow(ctx, query, employeeID, date.Format(dateLayout)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &d, nil
}

// GetByEmployeeInRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Daily, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM attendance_daily ad
		JOIN employees e ON e.id = ad.employee_id
		WHERE ad.employee_id = $1
		  AND ad.attendance_date BETWEEN $2::date AND $3::date
		ORDER BY ad.attendance_date
	`

	rows, err := q.Query(ctx, query, employeeID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query employee attendance: %w", err)
	}
	return collectDaily(rows)
}

// GetByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByDate(ctx context.Context, date time.Time) ([]attendance.Daily, error) {
	return a.GetInRange(ctx, date, date)
}

// GetInRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetInRange(ctx context.Context, from, to time.Time) ([]attendance.Daily, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM attendance_daily ad
		JOIN employees e ON e.id = ad.employee_id
		WHERE ad.attendance_date BETWEEN $1::date AND $2::date
		ORDER BY e.employee_code, ad.attendance_date
	`

	rows, err := q.Query(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	return collectDaily(rows)
}
