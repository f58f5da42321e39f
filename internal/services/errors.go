package services

import "errors"

// Closed error set of the credential and dispatch workflows. Handlers match
// these with errors.Is and translate them to status codes; anything else is a
// server error.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")

	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")

	ErrAlreadyVerified = errors.New("email already verified")
	ErrRateLimited     = errors.New("too many requests")

	ErrWrongPassword = errors.New("incorrect password")
	ErrNotVerified   = errors.New("email not verified")
	ErrKeyNotFound   = errors.New("api key not found")
	ErrInvalidAPIKey = errors.New("invalid api key")

	ErrQuotaExceeded = errors.New("daily limit reached")
)
