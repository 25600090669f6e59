package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/shop-api/internal/core/domain"
)

const testSecret = "0123456789abcdef-test-secret"

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestCodec(t *testing.T, clock *fakeClock, secret string) *Codec {
	t.Helper()
	c, err := NewCodec(Config{
		Secret:   []byte(secret),
		Issuer:   "shop-api",
		Audience: "shop-clients",
		Now:      clock.Now,
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func robin() *domain.User {
	return &domain.User{ID: 1, Username: "robin", Role: domain.RoleEmployee}
}

func TestNewCodec_ConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"short secret", Config{Secret: []byte("short"), Issuer: "i", Audience: "a"}, ErrWeakSecret},
		{"missing issuer", Config{Secret: []byte(testSecret), Audience: "a"}, ErrMissingIssuer},
		{"missing audience", Config{Secret: []byte(testSecret), Issuer: "i"}, ErrMissingAudience},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCodec(tc.cfg); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock, testSecret)

	for _, u := range []*domain.User{
		robin(),
		{ID: 2, Username: "batman", Role: domain.RoleManager},
		{ID: 3, Username: "alfred", Role: "butler"},
	} {
		signed, err := c.Issue(u)
		if err != nil {
			t.Fatalf("Issue(%s): %v", u.Username, err)
		}
		if parts := strings.Split(signed, "."); len(parts) != 3 {
			t.Fatalf("expected header.claims.signature, got %d parts", len(parts))
		}

		clock.t = issuedAt.Add(2*time.Hour - time.Second)
		got, err := c.Verify(signed)
		if err != nil {
			t.Fatalf("Verify(%s): %v", u.Username, err)
		}
		if got.Role != u.Role || got.Username != u.Username || got.UserID != u.ID {
			t.Fatalf("unexpected claims: %+v", got)
		}
		if !got.ExpiresAt.Equal(issuedAt.Add(2 * time.Hour)) {
			t.Fatalf("expected exp at issuance+2h, got %s", got.ExpiresAt)
		}
		clock.t = issuedAt
	}
}

func TestCodec_TimeClaims(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, &fakeClock{t: issuedAt}, testSecret)

	signed, err := c.Issue(robin())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var raw claims
	if _, _, err := jwt.NewParser().ParseUnverified(signed, &raw); err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if !raw.NotBefore.Time.Equal(issuedAt) {
		t.Fatalf("nbf = %s, want %s", raw.NotBefore.Time, issuedAt)
	}
	if raw.Issuer != "shop-api" || len(raw.Audience) != 1 || raw.Audience[0] != "shop-clients" {
		t.Fatalf("unexpected iss/aud: %s %v", raw.Issuer, raw.Audience)
	}
	if raw.Subject != "robin" {
		t.Fatalf("sub = %q, want robin", raw.Subject)
	}
}

func TestCodec_IssueRequiresIdentity(t *testing.T) {
	c := newTestCodec(t, &fakeClock{t: time.Now()}, testSecret)

	for _, u := range []*domain.User{
		nil,
		{Username: "robin", Role: domain.RoleEmployee},
		{ID: 1, Role: domain.RoleEmployee},
		{ID: 1, Username: "robin"},
	} {
		if _, err := c.Issue(u); !errors.Is(err, ErrIncompleteIdentity) {
			t.Fatalf("Issue(%+v): expected ErrIncompleteIdentity, got %v", u, err)
		}
	}
}

func TestCodec_Verify_Rejects(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	c := newTestCodec(t, clock, testSecret)

	signed, err := c.Issue(robin())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherKey := newTestCodec(t, clock, "another-secret-of-16+bytes")
	forged, _ := otherKey.Issue(robin())

	otherIssuer, _ := NewCodec(Config{Secret: []byte(testSecret), Issuer: "evil", Audience: "shop-clients", Now: clock.Now})
	wrongIss, _ := otherIssuer.Issue(robin())

	otherAudience, _ := NewCodec(Config{Secret: []byte(testSecret), Issuer: "shop-api", Audience: "others", Now: clock.Now})
	wrongAud, _ := otherAudience.Issue(robin())

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "robin", "role": domain.RoleManager, "iss": "shop-api", "aud": "shop-clients",
		"exp": issuedAt.Add(time.Hour).Unix(),
	})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := []struct {
		name  string
		token string
		at    time.Time
	}{
		{"different key", forged, issuedAt},
		{"expired", signed, issuedAt.Add(2*time.Hour + time.Second)},
		{"exactly at expiry", signed, issuedAt.Add(2 * time.Hour)},
		{"not yet valid", signed, issuedAt.Add(-time.Minute)},
		{"malformed", "not-a-token", issuedAt},
		{"empty", "", issuedAt},
		{"wrong issuer", wrongIss, issuedAt},
		{"wrong audience", wrongAud, issuedAt},
		{"alg none", unsigned, issuedAt},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock.t = tc.at
			if _, err := c.Verify(tc.token); !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
