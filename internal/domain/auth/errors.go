package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid name or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrForbidden           = errors.New("you do not have permission to perform this action")
	ErrOAuthDisabled       = errors.New("google sign-in is not configured")
	ErrOAuthNotAllowed     = errors.New("this google account is not allowed to sign in")
	ErrInvalidOAuthState   = errors.New("invalid oauth state")
)
