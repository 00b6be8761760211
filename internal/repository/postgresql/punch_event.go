package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type punchEventRepository struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) attendance.PunchEventRepository {
	return &punchEventRepository{db: db}
}

// Create implements attendance.PunchEventRepository.
func (p *punchEventRepository) Create(ctx context.Context, e attendance.PunchEvent) error {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO punch_events (
			id, employee_id, office_id, punch_type, punched_at, source,
			marked_by_employee_id, note, latitude, longitude,
			distance_from_office, matched_office_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		e.ID,
		e.EmployeeID,
		e.OfficeID,
		e.PunchType,
		e.PunchedAt,
		e.Source,
		e.MarkedByEmployeeID,
		e.Note,
		e.Latitude,
		e.Longitude,
		e.DistanceFromOffice,
		e.MatchedOfficeID,
	)
	if err != nil {
		return fmt.Errorf("failed to create punch event: %w", err)
	}
	return nil
}
