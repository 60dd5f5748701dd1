package domain

import "errors"

// ErrNotFound marks operations on unknown booking ids.
var ErrNotFound = errors.New("not found")

// ValidationError carries a user-correctable reason. Its message is surfaced
// verbatim with a 400 status.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// AuthError covers bad logins and missing/invalid/expired credentials. The
// message is deliberately generic so it never reveals which part failed.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

func Auth(reason string) error {
	return &AuthError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
