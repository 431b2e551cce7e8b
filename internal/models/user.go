package models

import "time"

// User roles
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleSeller = "seller"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"` // admin, user or seller
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Profile  ProfilePayload `json:"profile"`
}

// ProfilePayload carries the user's display name
type ProfilePayload struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     string         `json:"role"`
	Profile  ProfilePayload `json:"profile"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password,omitempty"` // Optional
	Role     string         `json:"role"`
	Profile  ProfilePayload `json:"profile"`
}
