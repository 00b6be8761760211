package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/security"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type securityViolationRepository struct {
	db *database.DB
}

func NewSecurityViolationRepository(db *database.DB) security.ViolationRepository {
	return &securityViolationRepository{db: db}
}

// Create implements security.ViolationRepository. It always writes through the
// pool so a violation survives the rollback of a surrounding transaction.
func (s *securityViolationRepository) Create(ctx context.Context, v security.Violation) error {
	query := `
		INSERT INTO security_violations (
			employee_id, violation_type, server_time, reported_time, drift_minutes,
			latitude, longitude, distance, office_id, details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.Exec(ctx, query,
		v.EmployeeID,
		v.Type,
		v.ServerTime,
		v.ReportedTime,
		v.DriftMinutes,
		v.Latitude,
		v.Longitude,
		v.Distance,
		v.OfficeID,
		v.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to create security violation: %w", err)
	}
	return nil
}
