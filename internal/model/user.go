package model

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}

// User represents an account in the system
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the shape of a user embedded in other responses
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Summary returns the user without credential fields, for embedding
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RegisterRequest is the self-service account creation payload.
// Role is optional and defaults to CUSTOMER.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest carries the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DeleteUserRequest identifies the user an admin wants to remove
type DeleteUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}
