package relational

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/storefront/shop-api/internal/core/domain"
)

// versionedUpdate applies values to the row with the given id. When version
// is non-zero the row must still carry it. A miss is resolved into notFound
// or domain.ErrConflict.
func versionedUpdate(ctx context.Context, db *gorm.DB, model any, id uint, version int, values map[string]any, notFound error) error {
	values["version"] = gorm.Expr("version + 1")
	values["updated_at"] = time.Now().UTC()

	q := db.WithContext(ctx).Model(model).Where("id = ?", id)
	if version > 0 {
		q = q.Where("version = ?", version)
	}

	res := q.UpdateColumns(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return domain.ErrConflict
}
