package model

import "time"

// Roles stored in users.role and carried in session token claims. Only
// RoleAdmin may authenticate into the admin surface.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User mirrors the 'users' table. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
