package posts

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when no live post has the requested id
	ErrNotFound = errors.New("post not found")
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

// NotFoundError represents a post lookup miss for a specific id
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return "post not found: " + strconv.FormatInt(e.ID, 10)
}

// Is lets errors.Is(err, ErrNotFound) match a *NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(id int64) error {
	return &NotFoundError{ID: id}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
