package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepository{db: db}
}

// GetActive implements office.OfficeRepository.
func (o *officeRepository) GetActive(ctx context.Context) ([]office.Office, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, code, latitude, longitude, allowed_radius_meters, is_active
		FROM offices
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	var offices []office.Office
	for rows.Next() {
		var of office.Office
		if err := rows.Scan(
			&of.ID, &of.Name, &of.Code, &of.Latitude, &of.Longitude, &of.AllowedRadiusMeters, &of.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, of)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offices: %w", err)
	}
	return offices, nil
}

// GetActiveByID implements office.OfficeRepository.
func (o *officeRepository) GetActiveByID(ctx context.Context, id string) (office.Office, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, code, latitude, longitude, allowed_radius_meters, is_active
		FROM offices
		WHERE id = $1 AND is_active = TRUE
	`

	var of office.Office
	err := q.QueryRow(ctx, query, id).Scan(
		&of.ID, &of.Name, &of.Code, &of.Latitude, &of.Longitude, &of.AllowedRadiusMeters, &of.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office by id: %w", err)
	}
	return of, nil
}
