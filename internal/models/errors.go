package models

import (
	"errors"
	"fmt"
)

var (
	// ErrGroupNotFound is returned when a group ID does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrMemberNotFound is returned when a member ID does not exist in the group.
	ErrMemberNotFound = errors.New("member not found")

	// ErrExpenseNotFound is returned when an expense ID does not exist in the group.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrGroupExists is returned when a group with the same name already exists.
	ErrGroupExists = errors.New("a group with this name already exists")

	// ErrMemberExists is returned when an active member with the same name
	// already exists in the group.
	ErrMemberExists = errors.New("a member with this name already exists")

	// ErrNothingToExport is returned when an export has no data to write.
	ErrNothingToExport = errors.New("nothing to export")
)

// ValidationError reports invalid user input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrExpenseNotFound)
}
