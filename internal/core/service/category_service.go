package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

type CategoryService struct {
	repo   ports.CategoryRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CategoryService {
	if audit == nil {
		audit = NopRecorder()
	}
	return &CategoryService{repo: repo, audit: audit, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	created, err := s.repo.Create(ctx, &domain.Category{Title: input.Title})
	if err != nil {
		return nil, domain.Persistence("could not create category", err)
	}

	s.logger.Info().Uint("category_id", created.ID).Msg("category created")
	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditCreate, domain.EntityCategory, idString(created.ID), domain.OutcomeSuccess))
	return created, nil
}

// Update fails with domain.ErrCategoryNotFound when pathID and input.ID
// disagree.
func (s *CategoryService) Update(ctx context.Context, pathID uint, input ports.CategoryInput) (*domain.Category, error) {
	if pathID != input.ID {
		return nil, domain.ErrCategoryNotFound
	}

	updated, err := s.repo.Update(ctx, &domain.Category{
		ID:      input.ID,
		Title:   input.Title,
		Version: input.Version,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, domain.Persistence("could not update category", err)
	}

	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditUpdate, domain.EntityCategory, idString(updated.ID), domain.OutcomeSuccess))
	return updated, nil
}

// Delete refuses to remove a category that still owns products; the store
// reports that as a persistence failure.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
		return domain.Persistence("could not remove category", err)
	}

	s.logger.Info().Uint("category_id", id).Msg("category removed")
	s.audit.Record(ctx, newAuditEntry(ctx, domain.AuditDelete, domain.EntityCategory, idString(id), domain.OutcomeSuccess))
	return nil
}
