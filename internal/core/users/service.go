package users

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Pragmatic email check; the mail exchanger has the final word.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 6
	maxBioLength      = 500
)

type userService struct {
	repo   UserRepository
	hasher PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, hasher PasswordHasher) UserService {
	return &userService{
		repo:   repo,
		hasher: hasher,
	}
}

// Register validates input, hashes the password, and creates the account.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, NewValidationError("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	// Repository maps the unique-email constraint to ErrEmailTaken
	return s.repo.Create(ctx, user)
}

// Authenticate verifies email + password and returns the account.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the non-nil fields of req to the user's profile.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, NewValidationError("bio",
				fmt.Sprintf("bio must be at most %d characters", maxBioLength))
		}
		user.Bio = &bio
	}
	if req.Avatar != nil {
		avatar := strings.TrimSpace(*req.Avatar)
		user.Avatar = &avatar
	}

	return s.repo.UpdateProfile(ctx, user)
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return NewValidationError("newPassword",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

// DeleteAccount re-verifies the password before removing the account.
// The user's posts are deleted by the store's cascade; their comments
// on other users' posts stay, rendered without an author.
func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}

	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// validateName bounds the display name in characters, not bytes.
func validateName(name string) error {
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return NewValidationError("name",
			fmt.Sprintf("name must be between %d and %d characters", minNameLength, maxNameLength))
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return NewValidationError("email", "invalid email address")
	}
	return nil
}
