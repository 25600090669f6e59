package relational

import (
	"time"

	"github.com/storefront/shop-api/internal/core/domain"
)

type userModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:20;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type categoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:60;not null"`
	Version   int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (categoryModel) TableName() string { return "categories" }

type productModel struct {
	ID          uint          `gorm:"primaryKey"`
	Title       string        `gorm:"size:60;not null"`
	Description string        `gorm:"size:1024"`
	Price       float64       `gorm:"not null"`
	CategoryID  uint          `gorm:"not null;index"`
	Category    categoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Version     int           `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productModel) TableName() string { return "products" }

func userFromDomain(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m categoryModel) toDomain() *domain.Category {
	return &domain.Category{
		ID:        m.ID,
		Title:     m.Title,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m productModel) toDomain() *domain.Product {
	p := &domain.Product{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		CategoryID:  m.CategoryID,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Category.ID != 0 {
		p.Category = m.Category.toDomain()
	}
	return p
}
