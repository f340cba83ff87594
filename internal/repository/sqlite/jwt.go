package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/auth"
)

type jwtRepositoryImpl struct {
	db *sql.DB
}

// NewJWTRepository creates a new instance of auth.TokenRepository.
func NewJWTRepository(db *sql.DB) auth.TokenRepository {
	return &jwtRepositoryImpl{db: db}
}

func hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (j *jwtRepositoryImpl) CreateRefreshToken(ctx context.Context, subject string, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, j.db)
	query := `
		INSERT INTO refresh_tokens (subject, token_hash, expires_at, user_agent, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := q.ExecContext(ctx, query,
		subject, hashToken(token), formatTime(time.Unix(expiresAt, 0)), session.UserAgent, session.IPAddress, now(),
	)
	return err
}

// IsRefreshTokenRevoked reports unknown tokens as revoked.
func (j *jwtRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = ?
		ORDER BY id DESC
		LIMIT 1
	`

	var revokedAt sql.NullString
	var expiresAtRaw string
	err := q.QueryRowContext(ctx, query, hashToken(token)).Scan(&revokedAt, &expiresAtRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, err
	}

	expiresAt, err := parseTime(expiresAtRaw)
	if err != nil {
		return false, err
	}

	if revokedAt.Valid || !expiresAt.After(time.Now()) {
		return true, nil
	}
	return false, nil
}

func (j *jwtRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, j.db)

	_, err := q.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL`,
		now(), hashToken(token),
	)
	return err
}
