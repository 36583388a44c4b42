package apperr

import (
	"errors"
	"fmt"
)

// ErrRemoteCall marks a failed call to the backing store.
var ErrRemoteCall = errors.New("remote call failed")

// ValidationError is a missing or malformed input field. The operation that
// returned it was not attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Remote wraps a store failure so callers can branch on ErrRemoteCall
// while keeping the cause.
func Remote(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrRemoteCall, err)
}
