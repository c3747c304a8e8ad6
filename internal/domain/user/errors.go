package user

import (
	"errors"

	"pantry-app-go/internal/domain/apperr"
)

var (
	ErrUserNotFound       = apperr.NotFound("user_not_found", "User not found.")
	ErrNameLength         = apperr.Validation("invalid_name", "Username must be between 3 and 30 characters.")
	ErrNameCharset        = apperr.Validation("invalid_name", "Username may only contain letters, numbers, dashes and underscores.")
	ErrInvalidEmail       = apperr.Validation("invalid_email", "Email address is invalid.")
	ErrEmailTaken         = apperr.Conflict("email_taken", "Email is already in use.")
	ErrPasswordTooShort   = apperr.Validation("invalid_password", "Password must be 8 or more characters.")
	ErrInvalidCredentials = apperr.Unauthorized("invalid_credentials", "Invalid email or password.")
	ErrInvalidToken       = apperr.Unauthorized("invalid_token", "invalid token")

	ErrSessionNotFound = errors.New("session not found")
)
