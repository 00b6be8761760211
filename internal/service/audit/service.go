package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/audit"
	"github.com/google/uuid"
)

const writeTimeout = 3 * time.Second

type RecorderImpl struct {
	repo audit.AuditLogRepository
	now  func() time.Time
}

func NewRecorder(repo audit.AuditLogRepository) audit.Recorder {
	return &RecorderImpl{repo: repo, now: time.Now}
}

// Record implements audit.Recorder. The write is detached from request
// cancellation and failures are only logged.
func (r *RecorderImpl) Record(ctx context.Context, entry audit.Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := r.repo.Create(ctx, entry); err != nil {
		slog.Warn("failed to write audit log",
			"action", entry.Action,
			"category", entry.Category,
			"status", entry.Status,
			"error", err,
		)
	}
}
