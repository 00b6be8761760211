package employee

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetActive lists active employees ordered by employee code
	GetActive(ctx context.Context) ([]Employee, error)

	// GetActiveIDsByRoles is used to address HR notifications
	GetActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error)
}
