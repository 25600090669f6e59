package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts user and returns the stored record.
	// Returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername matches username exactly (case-sensitive).
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update writes username, password hash and role. A non-zero Version must
	// match the stored one, otherwise domain.ErrConflict.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
