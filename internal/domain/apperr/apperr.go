package apperr

import "errors"

// Kinds. Every domain error unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a domain error with a stable code and a message safe to show to the caller.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func New(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(code, message string) *Error {
	return New(ErrValidation, code, message)
}

func Forbidden(code, message string) *Error {
	return New(ErrForbidden, code, message)
}

func NotFound(code, message string) *Error {
	return New(ErrNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(ErrConflict, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(ErrUnauthorized, code, message)
}

// As returns the domain error carried by err, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
