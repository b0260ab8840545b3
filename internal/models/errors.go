package models

import "errors"

var (
	// ErrNotFound is returned when a referenced list, user or token does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUniqueViolation is returned by stores when a write loses a race
	// against a uniqueness constraint.
	ErrUniqueViolation = errors.New("uniqueness violation")
)

// Messages shown next to the item input.
const (
	EmptyItemMessage     = "You can't have an empty list item"
	DuplicateItemMessage = "You've already got this in your list"
)

// ValidationError reports input that breaks a business rule before it is
// persisted. Field names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyItem     = &ValidationError{Field: "text", Message: EmptyItemMessage}
	ErrDuplicateItem = &ValidationError{Field: "text", Message: DuplicateItemMessage}
)

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
