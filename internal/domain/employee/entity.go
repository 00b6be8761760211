package employee

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	PhoneNumber  *string
	Role         user.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
