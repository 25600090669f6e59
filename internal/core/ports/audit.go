package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// AuditRecorder accepts audit entries. Implementations must not block the
// caller on storage.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

type AuditService interface {
	Recent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
