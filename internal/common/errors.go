package common

import "errors"

var (
	// Session errors.
	ErrInvalidCredential = errors.New("invalid login credentials")

	// Token errors (invalid or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenMissing = errors.New("refresh token missing")
)
