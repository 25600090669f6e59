package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/storefront/shop-api/internal/core/domain"
)

// ProductRepository implements ports.ProductRepository on GORM. Reads
// preload the owning category.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*domain.Product, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("category_id = ?", categoryID))
}

func (r *ProductRepository) find(_ context.Context, q *gorm.DB) ([]*domain.Product, error) {
	var rows []productModel
	if err := q.Preload("Category").Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*domain.Product, len(rows))
	for i, m := range rows {
		out[i] = m.toDomain()
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Preload("Category").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	m := productModel{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Version:     1,
	}
	if err := r.db.WithContext(ctx).Omit("Category").Create(&m).Error; err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return r.FindByID(ctx, m.ID)
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	err := versionedUpdate(ctx, r.db, &productModel{}, p.ID, p.Version, map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category_id": p.CategoryID,
	}, domain.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, p.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
