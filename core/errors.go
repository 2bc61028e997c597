package core

import "errors"

// Authentication errors
var (
	ErrUserExists         = errors.New("user already exists")       // 400 Bad Request
	ErrUserNotFound       = errors.New("user not found")            // 403 Forbidden
	ErrResetTokenNotFound = errors.New("reset token not found")     // 403 Forbidden
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized
)

// Config errors (server-side configuration)
var (
	ErrStoreRequired = errors.New("identity store is required")
)
