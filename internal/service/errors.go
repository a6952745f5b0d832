package service

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the services. Handlers translate these into HTTP
// statuses; nothing below is retried.
var (
	// ErrNotFound means a referenced entity or toggle row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("already exists")
	// ErrForbidden means the actor is not allowed to touch the entity.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError is malformed input, scoped to the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
