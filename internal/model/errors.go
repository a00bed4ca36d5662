package model

import (
	"errors"
	"fmt"
)

// ValidationError reports missing or malformed input. Handlers surface it as
// a client error; everything else from the store is a storage failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
