package handler

import (
	"time"

	"github.com/storefront/shop-api/internal/core/domain"
)

// --- Requests ---

type categoryRequest struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"   validate:"required,min=3,max=60"`
	Version int    `json:"version" validate:"gte=0"`
}

type productRequest struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"       validate:"required,min=3,max=60"`
	Description string  `json:"description" validate:"max=1024"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	CategoryID  uint    `json:"category_id" validate:"required,gte=1"`
	Version     int     `json:"version"     validate:"gte=0"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=3,max=20"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	ID       uint   `json:"id"`
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=3,max=20"`
	Role     string `json:"role"     validate:"required,max=32"`
	Version  int    `json:"version"  validate:"gte=0"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Responses ---

// userResponse always carries an empty password.
type userResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type loginResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type auditResponse struct {
	Entries []*domain.AuditEntry `json:"entries"`
}
