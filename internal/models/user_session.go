package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSession is the server-side record of an authenticated session.
// The cookie only carries the session token; everything else lives here.
type UserSession struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	SessionTokenHash string     `json:"-"`
	IPAddress        string     `json:"ip_address,omitempty"`
	UserAgent        string     `json:"user_agent,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	LastActiveAt     time.Time  `json:"last_active_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	Revoked          bool       `json:"revoked"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
}

// NewUserSession creates a new UserSession.
func NewUserSession(userID uuid.UUID, tokenHash, ipAddress, userAgent string, expiresAt time.Time) *UserSession {
	now := time.Now()
	return &UserSession{
		ID:               uuid.New(),
		UserID:           userID,
		SessionTokenHash: tokenHash,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		CreatedAt:        now,
		LastActiveAt:     now,
		ExpiresAt:        expiresAt,
	}
}

// IsExpired returns true if the session has expired.
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsActive returns true if the session is not revoked and not expired.
func (s *UserSession) IsActive() bool {
	return !s.Revoked && !s.IsExpired()
}
