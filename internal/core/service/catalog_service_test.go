package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

func employeeCtx() context.Context {
	return domain.WithCaller(context.Background(), domain.Authenticated(domain.Claims{
		UserID: 1, Username: "robin", Role: domain.RoleEmployee,
	}))
}

func TestCategoryService_CreateAndUpdate(t *testing.T) {
	rec := &captureRecorder{}
	svc := NewCategoryService(newStubCategoryRepo(), rec, zerolog.Nop())
	ctx := employeeCtx()

	c, err := svc.Create(ctx, ports.CategoryInput{Title: "Informática"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := rec.last(); got.Actor != "robin" || got.Entity != domain.EntityCategory || got.EntityID != "1" {
		t.Fatalf("unexpected audit entry: %+v", got)
	}

	updated, err := svc.Update(ctx, c.ID, ports.CategoryInput{ID: c.ID, Title: "Computers", Version: 1})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Computers" || updated.Version != 2 {
		t.Fatalf("unexpected category: %+v", updated)
	}

	_, err = svc.Update(ctx, c.ID, ports.CategoryInput{ID: c.ID, Title: "Stale", Version: 1})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "this record has already been updated" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCategoryService_Update_PathMismatch(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), nil, zerolog.Nop())

	if _, err := svc.Update(employeeCtx(), 1, ports.CategoryInput{ID: 2, Title: "abc"}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Get_Missing(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo(), nil, zerolog.Nop())

	if _, err := svc.Get(context.Background(), 9); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Delete(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo, nil, zerolog.Nop())
	ctx := employeeCtx()

	c, _ := svc.Create(ctx, ports.CategoryInput{Title: "Audio"})
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, c.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	repo.deleteErr = errors.New("FOREIGN KEY constraint failed")
	err := svc.Delete(ctx, 1)
	var perr *domain.PersistenceError
	if !errors.As(err, &perr) || perr.Message != "could not remove category" {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestProductService_Create_MissingCategory(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), newStubCategoryRepo(), nil, zerolog.Nop())

	_, err := svc.Create(employeeCtx(), ports.ProductInput{Title: "Mouse", Price: 299, CategoryID: 42})
	var perr *domain.PersistenceError
	if !errors.As(err, &perr) || perr.Message != "could not create product" {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestProductService_Lifecycle(t *testing.T) {
	categories := newStubCategoryRepo()
	cat, _ := categories.Create(context.Background(), &domain.Category{Title: "Informática"})
	rec := &captureRecorder{}
	svc := NewProductService(newStubProductRepo(), categories, rec, zerolog.Nop())
	ctx := employeeCtx()

	p, err := svc.Create(ctx, ports.ProductInput{Title: "Mouse", Description: "Mouse Gamer", Price: 299, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	list, err := svc.ListByCategory(ctx, cat.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByCategory: %v, %d rows", err, len(list))
	}
	empty, err := svc.ListByCategory(ctx, 99)
	if err != nil || len(empty) != 0 {
		t.Fatalf("ListByCategory unknown: %v, %d rows", err, len(empty))
	}

	if _, err := svc.Update(ctx, p.ID+1, ports.ProductInput{ID: p.ID, Title: "Mouse", Price: 1, CategoryID: cat.ID}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on path mismatch, got %v", err)
	}

	updated, err := svc.Update(ctx, p.ID, ports.ProductInput{ID: p.ID, Title: "Mouse", Price: 349, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Price != 349 || updated.Version != 2 {
		t.Fatalf("unexpected product: %+v", updated)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if got := rec.last(); got.Action != domain.AuditDelete || got.Entity != domain.EntityProduct {
		t.Fatalf("unexpected audit entry: %+v", got)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
