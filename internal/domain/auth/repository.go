package auth

import "context"

// TokenRepository stores hashes of issued refresh tokens so they can be revoked.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, subject string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
