package domain

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// User is both the identity and the credential record of an actor.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Redacted returns a copy of u that carries no credential material.
func (u *User) Redacted() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// Claims are the verified facts carried by a bearer token.
type Claims struct {
	UserID    uint
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LoginResult is the outcome of a successful credential check. Failures are
// reported as ErrInvalidCredentials or ErrTooManyAttempts instead.
type LoginResult struct {
	User  *User
	Token string
}
