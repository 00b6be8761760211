package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrWrongTokenType  = errors.New("access token required")
	ErrMissingEmployee = errors.New("token is not bound to an employee")
	ErrUnauthenticated = errors.New("authentication required")
)
