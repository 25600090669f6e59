package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type seedUser struct {
	username string
	password string
	role     string
}

var seedUsers = []seedUser{
	{username: "robin", password: "robin", role: domain.RoleEmployee},
	{username: "batman", password: "batman", role: domain.RoleManager},
}

// SeedService loads the fixture data used in development.
type SeedService struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	products   ports.ProductRepository
	logger     zerolog.Logger
}

func NewSeedService(users ports.UserRepository, categories ports.CategoryRepository, products ports.ProductRepository, logger zerolog.Logger) *SeedService {
	return &SeedService{users: users, categories: categories, products: products, logger: logger}
}

// Seed inserts missing fixture users by username, and the fixture catalog
// only when the catalog is empty. Running it twice changes nothing.
func (s *SeedService) Seed(ctx context.Context) error {
	for _, su := range seedUsers {
		if err := s.seedUser(ctx, su); err != nil {
			return err
		}
	}

	existing, err := s.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info().Int("categories", len(existing)).Msg("catalog already present, skipping")
		return nil
	}

	category, err := s.categories.Create(ctx, &domain.Category{Title: "Informática"})
	if err != nil {
		return fmt.Errorf("seed: create category: %w", err)
	}
	if _, err := s.products.Create(ctx, &domain.Product{
		Title:       "Mouse",
		Description: "Mouse Gamer",
		Price:       299,
		CategoryID:  category.ID,
	}); err != nil {
		return fmt.Errorf("seed: create product: %w", err)
	}

	s.logger.Info().Uint("category_id", category.ID).Msg("catalog seeded")
	return nil
}

func (s *SeedService) seedUser(ctx context.Context, su seedUser) error {
	_, err := s.users.FindByUsername(ctx, su.username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed: find %s: %w", su.username, err)
	}

	hash, err := hashPassword(su.password)
	if err != nil {
		return err
	}
	if _, err := s.users.Create(ctx, &domain.User{
		Username:     su.username,
		PasswordHash: hash,
		Role:         su.role,
	}); err != nil {
		return fmt.Errorf("seed: create %s: %w", su.username, err)
	}

	s.logger.Info().Str("username", su.username).Str("role", su.role).Msg("user seeded")
	return nil
}
