package domain

import "errors"

// Error kinds returned by the use cases. Callers match them with errors.Is;
// the wrapped cause carries the detail for logs.
var (
	ErrInvalidField      = errors.New("invalid field")
	ErrRequestValidation = errors.New("request validation failed")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrHashPassword      = errors.New("password hashing failed")
	ErrEmailTaken        = errors.New("email already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordMismatch  = errors.New("password and hash don't match")
	ErrGenerateToken     = errors.New("token generation failed")
	ErrDecodeToken       = errors.New("token is invalid or expired")
	ErrDatabase          = errors.New("database error")
	ErrGoalNotFound      = errors.New("goal not found")
)

// FieldError reports the first field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Is(target error) bool { return target == ErrInvalidField }

func invalid(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}
