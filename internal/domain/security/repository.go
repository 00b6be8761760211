package security

import "context"

type ViolationRepository interface {
	Create(ctx context.Context, violation Violation) error
}
