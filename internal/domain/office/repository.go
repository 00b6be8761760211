package office

import "context"

type OfficeRepository interface {
	// GetActive lists active offices ordered by name
	GetActive(ctx context.Context) ([]Office, error)

	// GetActiveByID returns ErrOfficeNotFound for unknown or inactive offices
	GetActiveByID(ctx context.Context, id string) (Office, error)
}
