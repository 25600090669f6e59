package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
)

func TestSeedService_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	categories := newStubCategoryRepo()
	products := newStubProductRepo()
	svc := NewSeedService(users, categories, products, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := svc.Seed(context.Background()); err != nil {
			t.Fatalf("Seed run %d returned error: %v", i, err)
		}
	}

	if len(users.byName) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users.byName))
	}
	if users.byName["batman"].Role != domain.RoleManager || users.byName["robin"].Role != domain.RoleEmployee {
		t.Fatalf("unexpected fixture roles")
	}
	if len(categories.rows) != 1 || len(products.rows) != 1 {
		t.Fatalf("expected one category and one product, got %d and %d", len(categories.rows), len(products.rows))
	}
	if products.rows[1].Title != "Mouse" || products.rows[1].Price != 299 {
		t.Fatalf("unexpected product fixture: %+v", products.rows[1])
	}
}

func TestSeedService_FixturesCanLogIn(t *testing.T) {
	users := newStubUserRepo()
	svc := NewSeedService(users, newStubCategoryRepo(), newStubProductRepo(), zerolog.Nop())
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	auth := NewAuthService(users, &stubCodec{}, nil, nil, zerolog.Nop())
	result, err := auth.Authenticate(context.Background(), "batman", "batman")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.Role != domain.RoleManager {
		t.Fatalf("expected manager, got %s", result.User.Role)
	}
}
