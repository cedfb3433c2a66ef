package ports

import (
	"context"

	"github.com/spacehq/space-auth/internal/core/domain"
)

// CredentialStore defines the interface for user credential persistence.
// Email uniqueness is enforced by the store itself; the service-level
// existence pre-check is a fast path, not the correctness guarantee.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
