package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotPostAuthor is returned when a caller tries to edit or delete
	// a post they did not write
	ErrNotPostAuthor = errors.New("only the post author may perform this action")

	// ErrNotCommentOwner is returned when a caller who is neither the
	// comment author nor the post author tries to delete a comment
	ErrNotCommentOwner = errors.New("only the comment author or the post author may delete this comment")

	// ErrUserNotFound is returned by the user directory when an author
	// reference does not resolve to an existing user
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string // e.g., "post", "comment"
	ID       string // Resource identifier
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrUserNotFound)
}

// IsForbidden checks if error is an ownership violation
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotPostAuthor) || errors.Is(err, ErrNotCommentOwner)
}
