package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) (*User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *User) (*User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(encodedHash, password string) error {
	args := m.Called(encodedHash, password)
	return args.Error(0)
}

// TestRegister_Success tests account creation with normalized input
func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	mockHasher.On("Hash", "secret123").Return("hashed", nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*users.User")).
		Return(&User{Name: "Alice", Email: "alice@example.com"}, nil)

	service := NewUserService(mockRepo, mockHasher)

	user, err := service.Register(context.Background(), RegisterRequest{
		Name:     "  Alice  ",
		Email:    "  ALICE@Example.COM ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	created := mockRepo.Calls[0].Arguments.Get(1).(*User)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "hashed", created.PasswordHash)
	assert.NotEqual(t, uuid.Nil, created.ID)

	mockRepo.AssertExpectations(t)
	mockHasher.AssertExpectations(t)
}

// TestRegister_ShortPassword tests the minimum password length
func TestRegister_ShortPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	service := NewUserService(mockRepo, mockHasher)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.True(t, IsValidationError(err), "expected ValidationError")

	mockHasher.AssertNotCalled(t, "Hash", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestRegister_InvalidEmail tests email format validation
func TestRegister_InvalidEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	service := NewUserService(mockRepo, mockHasher)

	for _, email := range []string{"", "nope", "a@b", "spaces in@example.com"} {
		_, err := service.Register(context.Background(), RegisterRequest{
			Name:     "Alice",
			Email:    email,
			Password: "secret123",
		})
		assert.True(t, IsValidationError(err), "expected ValidationError for %q", email)
	}
}

// TestRegister_NameBounds tests name length validation
func TestRegister_NameBounds(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	service := NewUserService(mockRepo, mockHasher)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "A",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.True(t, IsValidationError(err), "expected ValidationError")
}

// TestRegister_MultibyteName tests name bounds count characters, not bytes
func TestRegister_MultibyteName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	name := strings.Repeat("ø", 50) // 100 bytes, 50 characters
	mockHasher.On("Hash", "secret123").Return("hashed", nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Return(&User{Name: name, Email: "o@example.com"}, nil)

	service := NewUserService(mockRepo, mockHasher)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     name,
		Email:    "o@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterRequest{
		Name:     strings.Repeat("ø", 51),
		Email:    "o@example.com",
		Password: "secret123",
	})
	assert.True(t, IsValidationError(err), "expected ValidationError")
}

// TestRegister_EmailTaken tests the duplicate-email path
func TestRegister_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	mockHasher.On("Hash", "secret123").Return("hashed", nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrEmailTaken)

	service := NewUserService(mockRepo, mockHasher)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// TestAuthenticate_Success tests login with correct credentials
func TestAuthenticate_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	stored := &User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: "hashed"}
	mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
	mockHasher.On("Compare", "hashed", "secret123").Return(nil)

	service := NewUserService(mockRepo, mockHasher)

	user, err := service.Authenticate(context.Background(), " ALICE@example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

// TestAuthenticate_WrongPassword tests the password mismatch path
func TestAuthenticate_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	stored := &User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: "hashed"}
	mockRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
	mockHasher.On("Compare", "hashed", "wrong").Return(errors.New("mismatch"))

	service := NewUserService(mockRepo, mockHasher)

	_, err := service.Authenticate(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestAuthenticate_UnknownEmail tests unknown accounts are indistinguishable
// from wrong passwords
func TestAuthenticate_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, ErrUserNotFound)

	service := NewUserService(mockRepo, mockHasher)

	_, err := service.Authenticate(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	mockHasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}

// TestUpdateProfile_PartialUpdate tests nil fields are left untouched
func TestUpdateProfile_PartialUpdate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	stored := &User{ID: id, Name: "Alice", Email: "alice@example.com"}
	mockRepo.On("GetByID", mock.Anything, id).Return(stored, nil)
	mockRepo.On("UpdateProfile", mock.Anything, stored).Return(stored, nil)

	service := NewUserService(mockRepo, mockHasher)

	bio := "hello"
	updated, err := service.UpdateProfile(context.Background(), id, UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "hello", *updated.Bio)
}

// TestUpdateProfile_InvalidName tests validation applies to updates too
func TestUpdateProfile_InvalidName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&User{ID: id, Name: "Alice"}, nil)

	service := NewUserService(mockRepo, mockHasher)

	name := "A"
	_, err := service.UpdateProfile(context.Background(), id, UpdateProfileRequest{Name: &name})
	assert.True(t, IsValidationError(err), "expected ValidationError")

	mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

// TestChangePassword_Success tests the full verify-then-rehash flow
func TestChangePassword_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&User{ID: id, PasswordHash: "old-hash"}, nil)
	mockHasher.On("Compare", "old-hash", "current").Return(nil)
	mockHasher.On("Hash", "brand-new").Return("new-hash", nil)
	mockRepo.On("UpdatePassword", mock.Anything, id, "new-hash").Return(nil)

	service := NewUserService(mockRepo, mockHasher)

	err := service.ChangePassword(context.Background(), id, "current", "brand-new")
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

// TestChangePassword_WrongCurrent tests rejection without re-hashing
func TestChangePassword_WrongCurrent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&User{ID: id, PasswordHash: "old-hash"}, nil)
	mockHasher.On("Compare", "old-hash", "wrong").Return(errors.New("mismatch"))

	service := NewUserService(mockRepo, mockHasher)

	err := service.ChangePassword(context.Background(), id, "wrong", "brand-new")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

// TestDeleteAccount_Success tests deletion after password re-verification
func TestDeleteAccount_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&User{ID: id, PasswordHash: "hashed"}, nil)
	mockHasher.On("Compare", "hashed", "secret123").Return(nil)
	mockRepo.On("Delete", mock.Anything, id).Return(nil)

	service := NewUserService(mockRepo, mockHasher)

	err := service.DeleteAccount(context.Background(), id, "secret123")
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

// TestDeleteAccount_WrongPassword tests nothing is removed on a mismatch
func TestDeleteAccount_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(&User{ID: id, PasswordHash: "hashed"}, nil)
	mockHasher.On("Compare", "hashed", "wrong").Return(errors.New("mismatch"))

	service := NewUserService(mockRepo, mockHasher)

	err := service.DeleteAccount(context.Background(), id, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestDeleteAccount_UnknownUser tests deletion of a missing account
func TestDeleteAccount_UnknownUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, ErrUserNotFound)

	service := NewUserService(mockRepo, mockHasher)

	err := service.DeleteAccount(context.Background(), id, "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)

	mockHasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}

// TestChangePassword_ShortNew tests the length check runs first
func TestChangePassword_ShortNew(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockHasher := new(MockPasswordHasher)

	service := NewUserService(mockRepo, mockHasher)

	err := service.ChangePassword(context.Background(), uuid.New(), "current", "short")
	assert.True(t, IsValidationError(err), "expected ValidationError")

	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
