package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
	anonymousActor    = "anonymous"
)

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, domain.AuditEntry) {}

// NopRecorder discards every entry. It stands in when no audit store is
// configured.
func NopRecorder() ports.AuditRecorder { return nopRecorder{} }

// newAuditEntry stamps an entry with a fresh id, the current time and the
// caller found in ctx.
func newAuditEntry(ctx context.Context, action, entity, entityID, outcome string) domain.AuditEntry {
	actor := anonymousActor
	if c := domain.CallerFrom(ctx); c.IsAuthenticated() {
		actor = c.Username
	}
	return domain.AuditEntry{
		ID:       uuid.NewString(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Actor:    actor,
		Outcome:  outcome,
		At:       time.Now().UTC(),
	}
}

func idString(id uint) string { return fmt.Sprintf("%d", id) }

// AuditService reads back the audit trail.
type AuditService struct {
	repo ports.AuditRepository
}

// NewAuditService accepts a nil repo, in which case Recent is always empty.
func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Recent returns the newest entries. limit is clamped to [1, 100] and
// defaults to 20.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	if s.repo == nil {
		return []*domain.AuditEntry{}, nil
	}
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}

	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent audit entries: %w", err)
	}
	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	return entries, nil
}
