package auth

import "errors"

// Validation
var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailAndCodeRequired = errors.New("email and login code are required")
)

// Login code verification
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCode  = errors.New("invalid login code")
	ErrCodeExpired  = errors.New("login code has expired")
)

// Session tokens
var (
	ErrMissingToken = errors.New("missing session token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
