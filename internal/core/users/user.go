package users

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the directory. PasswordHash is never
// serialized into API responses.
type User struct {
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          *string   `json:"bio,omitempty"`
	Avatar       *string   `json:"avatar,omitempty"`
	ID           uuid.UUID `json:"id"`
}

// RegisterRequest is the input for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries optional profile changes; nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}
