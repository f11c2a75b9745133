package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdeskpro/helpdesk/internal/models"
)

// CreateUserSession inserts a session record.
func (db *DB) CreateUserSession(ctx context.Context, s *models.UserSession) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO user_sessions (id, user_id, session_token_hash, ip_address, user_agent,
		                           created_at, last_active_at, expires_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, s.ID, s.UserID, s.SessionTokenHash, s.IPAddress, s.UserAgent,
		s.CreatedAt, s.LastActiveAt, s.ExpiresAt, s.Revoked)
	if err != nil {
		return fmt.Errorf("create user session: %w", err)
	}
	return nil
}

// GetUserSessionByID returns a session record by its ID.
func (db *DB) GetUserSessionByID(ctx context.Context, id uuid.UUID) (*models.UserSession, error) {
	var s models.UserSession
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, session_token_hash, ip_address, user_agent,
		       created_at, last_active_at, expires_at, revoked, revoked_at
		FROM user_sessions
		WHERE id = $1
	`, id).Scan(
		&s.ID, &s.UserID, &s.SessionTokenHash, &s.IPAddress, &s.UserAgent,
		&s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt, &s.Revoked, &s.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user session: %w", err)
	}
	return &s, nil
}

// TouchUserSession refreshes a session's last-active timestamp.
func (db *DB) TouchUserSession(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE user_sessions SET last_active_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("touch user session: %w", err)
	}
	return nil
}

// RevokeUserSession marks a session revoked.
func (db *DB) RevokeUserSession(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE user_sessions
		SET revoked = TRUE, revoked_at = NOW()
		WHERE id = $1 AND NOT revoked
	`, id)
	if err != nil {
		return fmt.Errorf("revoke user session: %w", err)
	}
	return nil
}

// DeleteExpiredUserSessions removes sessions that expired before the
// cutoff. Returns the number of rows deleted.
func (db *DB) DeleteExpiredUserSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM user_sessions WHERE expires_at < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
