package entity

import "errors"

// Sentinel errors for the outcomes the API must keep distinguishable:
// not-found, forbidden, and the non-mutating conflict rejections.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("permission denied")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post not liked")
	ErrConflict           = errors.New("conflicting concurrent update")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCategoryCycle      = errors.New("category cannot be its own ancestor")
)

// ValidationError reports a rejected input with field-level detail. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
