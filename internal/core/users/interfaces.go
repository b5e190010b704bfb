package users

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByIDs retrieves multiple users in a single batch query.
	// Missing users are not included in the result map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)

	UpdateProfile(ctx context.Context, user *User) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Delete removes the account row. The user's posts go with it via
	// the posts.author_id cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PasswordHasher hashes and verifies passwords. The service never sees
// plaintext beyond this boundary.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when the password matches the stored hash.
	Compare(encodedHash, password string) error
}

// UserService defines the interface for user business logic
type UserService interface {
	// Register validates input, hashes the password, and creates the
	// account. ErrEmailTaken if the email is already registered.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate verifies email + password and returns the account.
	// ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)

	// ChangePassword re-verifies the current password before storing a
	// new hash.
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error

	// DeleteAccount re-verifies the password, then removes the account
	// and, through the store's cascade, every post the user authored.
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}
