package relational

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository on GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if taken, err := r.usernameTaken(ctx, user.Username, 0); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, domain.ErrUserExists
	}

	m := userFromDomain(user)
	m.ID = 0
	m.Version = 1
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return m.toDomain(), nil
}

// FindByUsername re-checks the match in Go so that case-insensitive
// collations (MySQL's default) cannot widen the lookup.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if m.Username != username {
		return nil, domain.ErrUserNotFound
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*domain.User, len(rows))
	for i, m := range rows {
		out[i] = m.toDomain()
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if taken, err := r.usernameTaken(ctx, user.Username, user.ID); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if taken {
		return nil, domain.ErrUserExists
	}

	err := versionedUpdate(ctx, r.db, &userModel{}, user.ID, user.Version, map[string]any{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
	}, domain.ErrUserNotFound)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) usernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&userModel{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
