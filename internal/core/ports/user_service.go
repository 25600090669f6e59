package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// RegisterUserInput is the public registration payload. Role is accepted
// but never honoured.
type RegisterUserInput struct {
	Username string
	Password string
	Role     string
}

// UpdateUserInput carries a manager's edit of a user record.
type UpdateUserInput struct {
	ID       uint
	Username string
	Password string
	Role     string
	Version  int
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update fails with domain.ErrUserNotFound when pathID != input.ID.
	Update(ctx context.Context, pathID uint, input UpdateUserInput) (*domain.User, error)
}
