// Package token issues and verifies the HS256 bearer tokens handed out at
// login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/shop-api/internal/core/domain"
)

const (
	// DefaultTTL is the validity window of an issued token.
	DefaultTTL = 2 * time.Hour
	// MinSecretLength is the minimum signing key size in bytes.
	MinSecretLength = 16
)

var (
	ErrWeakSecret         = fmt.Errorf("token: signing secret must be at least %d bytes", MinSecretLength)
	ErrMissingIssuer      = errors.New("token: issuer is required")
	ErrMissingAudience    = errors.New("token: audience is required")
	ErrIncompleteIdentity = errors.New("token: user id, username and role are required")
)

// Config is loaded once at process start.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

// Codec implements ports.TokenCodec. It holds no mutable state and is safe
// for concurrent use.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// claims is the wire form of a token payload.
type claims struct {
	Role   string `json:"role"`
	UserID uint   `json:"uid"`
	jwt.RegisteredClaims
}

func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if cfg.Issuer == "" {
		return nil, ErrMissingIssuer
	}
	if cfg.Audience == "" {
		return nil, ErrMissingAudience
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &Codec{
		secret:   secret,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
		now:      now,
	}, nil
}

// Issue signs a token for user. sub is the username; nbf and iat are the
// issuance instant.
func (c *Codec) Issue(user *domain.User) (string, error) {
	if user == nil || user.ID == 0 || user.Username == "" || user.Role == "" {
		return "", ErrIncompleteIdentity
	}

	now := c.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:   user.Role,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer, audience, expiry and
// not-before. Every failure is reported as domain.ErrInvalidToken.
func (c *Codec) Verify(raw string) (domain.Claims, error) {
	var parsed claims
	tkn, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid || parsed.Subject == "" {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	out := domain.Claims{
		UserID:    parsed.UserID,
		Username:  parsed.Subject,
		Role:      parsed.Role,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}
	if parsed.IssuedAt != nil {
		out.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return out, nil
}
