package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type auditLogRepository struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) audit.AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create implements audit.AuditLogRepository.
func (a *auditLogRepository) Create(ctx context.Context, entry audit.Entry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, category, status, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = a.db.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.Category,
		entry.Status,
		details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}
