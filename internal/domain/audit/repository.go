package audit

import "context"

type AuditLogRepository interface {
	Create(ctx context.Context, entry Entry) error
}
