package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	// Update honours optimistic concurrency on a non-zero Version.
	Update(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

// ProductRepository returns products with their Category populated.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]*domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}
