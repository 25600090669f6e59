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

// LoginThrottle limits repeated failed logins for a username.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements login.
type AuthService struct {
	users    ports.UserRepository
	codec    ports.TokenCodec
	throttle LoginThrottle
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

// NewAuthService wires the login flow. throttle and audit may be nil.
func NewAuthService(users ports.UserRepository, codec ports.TokenCodec, throttle LoginThrottle, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	if audit == nil {
		audit = NopRecorder()
	}
	return &AuthService{users: users, codec: codec, throttle: throttle, audit: audit, logger: logger}
}

// Authenticate checks the credentials and issues a token for the stored
// record. Unknown users and wrong passwords are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	if username == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.blocked(ctx, username) {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		s.logger.Warn().Str("username", username).Msg("login throttled")
		s.recordLogin(ctx, username, domain.OutcomeFailure)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.fail(ctx, username)
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.fail(ctx, username)
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("throttle reset failed")
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(user.Role).Inc()
	s.logger.Info().Str("username", username).Str("role", user.Role).Msg("login succeeded")
	s.recordLogin(ctx, username, domain.OutcomeSuccess)

	return &domain.LoginResult{User: user.Redacted(), Token: token}, nil
}

// blocked fails open when the throttle store is unreachable.
func (s *AuthService) blocked(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) fail(ctx context.Context, username string) error {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	s.logger.Info().Str("username", username).Msg("login failed")

	if s.throttle != nil {
		if err := s.throttle.Fail(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("throttle update failed")
		}
	}
	s.recordLogin(ctx, username, domain.OutcomeFailure)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) recordLogin(ctx context.Context, username, outcome string) {
	entry := newAuditEntry(ctx, domain.AuditLogin, domain.EntityUser, username, outcome)
	entry.Actor = username
	s.audit.Record(ctx, entry)
}
