package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
	"github.com/storefront/shop-api/internal/pkg/metrics"
)

// UserService manages registration and manager edits of user records.
type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	if audit == nil {
		audit = NopRecorder()
	}
	return &UserService{repo: repo, audit: audit, logger: logger}
}

// Register creates an employee account. The submitted role is ignored.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, domain.Persistence("could not register user", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Uint("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditCreate, domain.EntityUser, idString(created.ID), domain.OutcomeSuccess))

	return created.Redacted(), nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*domain.User, len(users))
	for i, u := range users {
		out[i] = u.Redacted()
	}
	return out, nil
}

// Update writes the submitted username, password and role.
func (s *UserService) Update(ctx context.Context, pathID uint, input ports.UpdateUserInput) (*domain.User, error) {
	if pathID != input.ID {
		return nil, domain.ErrUserNotFound
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &domain.User{
		ID:           input.ID,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		Version:      input.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrConflict),
			errors.Is(err, domain.ErrUserExists):
			return nil, err
		}
		return nil, domain.Persistence("could not update user", err)
	}

	s.logger.Info().Uint("user_id", updated.ID).Str("role", updated.Role).Msg("user updated")
	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditUpdate, domain.EntityUser, idString(updated.ID), domain.OutcomeSuccess))

	return updated.Redacted(), nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
