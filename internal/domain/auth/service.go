package auth

import (
	"context"
)

type AuthService interface {
	// Login authenticates HR or an employee by name and password
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// GoogleLoginURL returns the consent page URL for HR sign-in
	GoogleLoginURL(state string) (string, error)

	// LoginWithGoogle exchanges the callback code and signs in an allow-listed HR account
	LoginWithGoogle(ctx context.Context, req GoogleCallbackRequest, session SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken rotates the refresh token and issues a new access token
	RefreshToken(ctx context.Context, req RefreshTokenRequest, session SessionTrackingRequest) (TokenResponse, error)

	// Logout revokes the refresh token and the current access token
	Logout(ctx context.Context, refreshToken string, accessToken string) error
}
