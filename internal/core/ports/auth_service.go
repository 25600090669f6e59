package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// AuthService resolves credentials to an identity and a bearer token.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.LoginResult, error)
}

// TokenCodec issues and verifies bearer tokens.
type TokenCodec interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (domain.Claims, error)
}
