package validation

import (
	"errors"
	"fmt"
)

// Error is a rejected input field. Handlers answer it with 400.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
