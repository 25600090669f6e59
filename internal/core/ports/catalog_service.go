package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// CategoryInput is a validated category payload.
type CategoryInput struct {
	ID      uint
	Title   string
	Version int
}

// ProductInput is a validated product payload.
type ProductInput struct {
	ID          uint
	Title       string
	Description string
	Price       float64
	CategoryID  uint
	Version     int
}

type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, pathID uint, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}

type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]*domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, pathID uint, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}
