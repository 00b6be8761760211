package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, phone_number, role, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.PhoneNumber, &emp.Role,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetActive implements employee.EmployeeRepository.
func (e *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_code, full_name, phone_number, role, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.PhoneNumber, &emp.Role,
			&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// GetActiveIDsByRoles implements employee.EmployeeRepository.
func (e *employeeRepository) GetActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	query := `
		SELECT id
		FROM employees
		WHERE is_active = TRUE AND role = ANY($1)
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by role: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect employee ids: %w", err)
	}
	return ids, nil
}
