package auth

import "errors"

// MinPasswordLen is the provider's password policy floor.
const MinPasswordLen = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailUnverified    = errors.New("email not verified")
	ErrEmailInUse         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too short")
)
