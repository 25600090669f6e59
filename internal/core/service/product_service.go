package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type ProductService struct {
	repo       ports.ProductRepository
	categories ports.CategoryRepository
	audit      ports.AuditRecorder
	logger     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, categories ports.CategoryRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ProductService {
	if audit == nil {
		audit = NopRecorder()
	}
	return &ProductService{repo: repo, categories: categories, audit: audit, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// ListByCategory returns an empty list for an unknown category.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uint) ([]*domain.Product, error) {
	list, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return list, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if err := s.categoryExists(ctx, input.CategoryID); err != nil {
		return nil, domain.Persistence("could not create product", err)
	}

	created, err := s.repo.Create(ctx, &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return nil, domain.Persistence("could not create product", err)
	}

	s.logger.Info().Uint("product_id", created.ID).Uint("category_id", created.CategoryID).Msg("product created")
	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditCreate, domain.EntityProduct, idString(created.ID), domain.OutcomeSuccess))
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, pathID uint, input ports.ProductInput) (*domain.Product, error) {
	if pathID != input.ID {
		return nil, domain.ErrProductNotFound
	}
	if err := s.categoryExists(ctx, input.CategoryID); err != nil {
		return nil, domain.Persistence("could not update product", err)
	}

	updated, err := s.repo.Update(ctx, &domain.Product{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		Version:     input.Version,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, domain.Persistence("could not update product", err)
	}

	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditUpdate, domain.EntityProduct, idString(updated.ID), domain.OutcomeSuccess))
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return domain.Persistence("could not remove product", err)
	}

	s.logger.Info().Uint("product_id", id).Msg("product removed")
	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditDelete, domain.EntityProduct, idString(id), domain.OutcomeSuccess))
	return nil
}

func (s *ProductService) categoryExists(ctx context.Context, id uint) error {
	_, err := s.categories.FindByID(ctx, id)
	return err
}
